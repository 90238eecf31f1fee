package service

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"mysite/app/models"
	"mysite/app/repositories"
	"mysite/app/services"

	"github.com/spf13/cobra"
)

func (c *cli) newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Moderate comments",
		Long: `Moderate comments.

Subcommands:
  list        - List comments with filters and search
  activate    - Show comments on the site again
  deactivate  - Hide comments from the site
  delete      - Delete a comment`,
	}
	cmd.AddCommand(
		c.newCommentsListCmd(),
		c.newCommentsActiveCmd("activate", "Show comments on the site", true),
		c.newCommentsActiveCmd("deactivate", "Hide comments from the site", false),
		c.newCommentsDeleteCmd(),
	)
	return cmd
}

func newCommentService(store repositories.Store) *services.CommentService {
	return services.NewCommentService(store.Comments(), newPostService(store))
}

func (c *cli) newCommentsListCmd() *cobra.Command {
	var (
		postID int
		active bool
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List comments",
		Long: `List comments, oldest first.

Examples:
  mysite comments list --post 3
  mysite comments list --active=false
  mysite comments list --search spam`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repositories.CommentFilter{PostID: postID, Search: search}
			if cmd.Flags().Changed("active") {
				filter.Active = &active
			}
			return c.withStore(func(store clearable) error {
				comments, err := newCommentService(store).ListComments(filter)
				if err != nil {
					return err
				}
				printComments(cmd.OutOrStdout(), comments)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&postID, "post", 0, "Only comments on this post id")
	flags.BoolVar(&active, "active", true, "Filter by active state")
	flags.StringVar(&search, "search", "", "Search name, email and body")
	return cmd
}

func printComments(out io.Writer, comments []*models.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(out, "No comments found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPOST\tCREATED\tACTIVE")
	for _, cm := range comments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%t\n",
			cm.ID, cm.Name, cm.Email, cm.PostID, cm.Created.UTC().Format("2006-01-02 15:04"), cm.Active)
	}
	w.Flush()
}

func (c *cli) newCommentsActiveCmd(use, short string, active bool) *cobra.Command {
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
				svc := newCommentService(store)
				for _, id := range ids {
					comment, err := svc.SetActive(id, active)
					if errors.Is(err, repositories.ErrNotFound) {
						return fmt.Errorf("comment %d not found", id)
					}
					if err != nil {
						return fmt.Errorf("comment %d: %w", id, err)
					}
					state := "hidden"
					if comment.Active {
						state = "visible"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Comment %d by %s is now %s\n", comment.ID, comment.Name, state)
				}
				return nil
			})
		},
	}
}

func (c *cli) newCommentsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			id := ids[0]
			return c.withStore(func(store clearable) error {
				svc := newCommentService(store)
				comment, err := svc.GetComment(id)
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("comment %d not found", id)
				}
				if err != nil {
					return err
				}
				if !yes && !confirm(cmd, fmt.Sprintf("Delete comment %d by %s?", comment.ID, comment.Name)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
					return nil
				}
				if err := svc.DeleteComment(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
