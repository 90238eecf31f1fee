package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"mysite/app/models"
	"mysite/app/repositories"
	"mysite/app/services"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func (c *cli) newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage blog posts",
		Long: `Manage blog posts.

Subcommands:
  list     - List posts with filters and search
  create   - Create a post
  publish  - Publish posts
  draft    - Move posts back to draft
  delete   - Delete a post and its comments`,
	}
	cmd.AddCommand(
		c.newPostsListCmd(),
		c.newPostsCreateCmd(),
		c.newPostsStatusCmd("publish", "Publish posts", models.StatusPublished),
		c.newPostsStatusCmd("draft", "Move posts back to draft", models.StatusDraft),
		c.newPostsDeleteCmd(),
	)
	return cmd
}

func newPostService(store repositories.Store) *services.PostService {
	return services.NewPostService(store.Posts(), store.Comments(), store.Users())
}

// parseDay parses a YYYY-MM-DD flag value as a UTC day.
func parseDay(name, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, value)
	}
	return t, nil
}

// parsePublish accepts RFC 3339 or a bare date.
func parsePublish(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return parseDay("publish", value)
}

func lookupAuthor(store repositories.Store, username string) (*models.User, error) {
	user, err := services.NewUserService(store.Users()).GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("no author named %q", username)
	}
	return user, err
}

func (c *cli) newPostsListCmd() *cobra.Command {
	var (
		status, topic, tag, author, search, from, to string
		limit, offset                                int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Long: `List posts of every status, newest first.

Examples:
  mysite posts list --status draft
  mysite posts list --author admin --from 2024-01-01 --to 2024-12-31
  mysite posts list --search django`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repositories.PostFilter{Topic: topic, Tag: tag, Search: search}
			if status != "" {
				s, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = s
			}
			if from != "" {
				t, err := parseDay("from", from)
				if err != nil {
					return err
				}
				filter.PublishFrom = t
			}
			if to != "" {
				t, err := parseDay("to", to)
				if err != nil {
					return err
				}
				// --to names the last day included.
				filter.PublishTo = t.AddDate(0, 0, 1)
			}

			return c.withStore(func(store clearable) error {
				if author != "" {
					user, err := lookupAuthor(store, author)
					if err != nil {
						return err
					}
					filter.AuthorID = user.ID
				}
				posts, err := newPostService(store).ListPosts(filter, limit, offset)
				if err != nil {
					return err
				}
				printPosts(cmd.OutOrStdout(), posts)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&status, "status", "", "Filter by status (draft or published)")
	flags.StringVar(&topic, "topic", "", "Filter by topic")
	flags.StringVar(&tag, "tag", "", "Filter by tag")
	flags.StringVar(&author, "author", "", "Filter by author username")
	flags.StringVar(&search, "search", "", "Search title and body")
	flags.StringVar(&from, "from", "", "Published on or after this day (YYYY-MM-DD)")
	flags.StringVar(&to, "to", "", "Published on or before this day (YYYY-MM-DD)")
	flags.IntVar(&limit, "limit", 0, "Maximum number of posts (0 for all)")
	flags.IntVar(&offset, "offset", 0, "Number of posts to skip")
	return cmd
}

func printPosts(out io.Writer, posts []*models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSLUG\tAUTHOR\tTOPIC\tPUBLISH\tSTATUS")
	for _, p := range posts {
		author := ""
		if p.Author != nil {
			author = p.Author.Username
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.Slug, author, p.Topic, p.Publish.UTC().Format("2006-01-02 15:04"), p.Status.Label())
	}
	w.Flush()
}

func (c *cli) newPostsCreateCmd() *cobra.Command {
	var (
		title, slug, topic, author, body, image, publish, status string
		tags                                                     []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Long: `Create a post. The slug is derived from the title unless given.

Examples:
  mysite posts create --title "Hello" --author admin --body "First post" --status published
  mysite posts create --title "Later" --author admin --body "..." --publish 2024-06-01 --tags go,web`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			post := &models.Post{
				Title: title,
				Slug:  slug,
				Topic: topic,
				Body:  body,
				Image: image,
				Tags:  tags,
			}
			if status != "" {
				s, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				post.Status = s
			}
			if publish != "" {
				t, err := parsePublish(publish)
				if err != nil {
					return err
				}
				post.Publish = t
			}

			return c.withStore(func(store clearable) error {
				user, err := lookupAuthor(store, author)
				if err != nil {
					return err
				}
				post.AuthorID = user.ID
				if err := newPostService(store).CreatePost(post); err != nil {
					if errors.Is(err, repositories.ErrSlugTaken) {
						return fmt.Errorf("a post with slug %q is already published on %s", post.Slug, post.Publish.UTC().Format(dateLayout))
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created post %d: %s\n", post.ID, post.AbsolutePath())
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "Post title")
	flags.StringVar(&slug, "slug", "", "URL slug (default: derived from the title)")
	flags.StringVar(&topic, "topic", "", "Topic (default \"topic\")")
	flags.StringVar(&author, "author", "", "Author username")
	flags.StringVar(&body, "body", "", "Post body")
	flags.StringVar(&image, "image", "", "Image path")
	flags.StringVar(&publish, "publish", "", "Publish time, RFC 3339 or YYYY-MM-DD (default: now)")
	flags.StringVar(&status, "status", "", "draft or published (default draft)")
	flags.StringSliceVar(&tags, "tags", nil, "Comma separated tags")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

// parseIDs converts positional arguments to ids.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *cli) newPostsStatusCmd(use, short string, status models.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return c.withStore(func(store clearable) error {
				svc := newPostService(store)
				for _, id := range ids {
					post, err := svc.SetStatus(id, status)
					if errors.Is(err, repositories.ErrNotFound) {
						return fmt.Errorf("post %d not found", id)
					}
					if err != nil {
						return fmt.Errorf("post %d: %w", id, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Post %d %q is now %s\n", post.ID, post.Title, post.Status.Label())
				}
				return nil
			})
		},
	}
}

func (c *cli) newPostsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			id := ids[0]
			if !yes && !confirm(cmd, fmt.Sprintf("Delete post %d and all of its comments?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
				return nil
			}
			return c.withStore(func(store clearable) error {
				err := newPostService(store).DeletePost(id)
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("post %d not found", id)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
