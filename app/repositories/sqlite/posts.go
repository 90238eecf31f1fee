package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mysite/app/models"
	"mysite/app/repositories"
)

// PostRepository implements repositories.PostRepository.
type PostRepository struct {
	db *sql.DB
}

const postColumns = `id, title, topic, slug, author_id, body, image, tags, publish_at, created_at, updated_at, status`

// Tags are stored as ",a,b," so a single tag can be matched with instr.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "," + strings.Join(tags, ",") + ","
}

func decodeTags(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post                      models.Post
		tags, status              string
		publish, created, updated int64
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Topic, &post.Slug, &post.AuthorID, &post.Body,
		&post.Image, &tags, &publish, &created, &updated, &status); err != nil {
		return nil, err
	}
	post.Tags = decodeTags(tags)
	post.Publish = fromMillis(publish)
	post.Created = fromMillis(created)
	post.Updated = fromMillis(updated)
	post.Status = models.Status(status)
	return &post, nil
}

func postWhere(f repositories.PostFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Tag != "" {
		clauses = append(clauses, "instr(tags, ?) > 0")
		args = append(args, ","+f.Tag+",")
	}
	if f.Topic != "" {
		clauses = append(clauses, "topic = ?")
		args = append(args, f.Topic)
	}
	if f.AuthorID != 0 {
		clauses = append(clauses, "author_id = ?")
		args = append(args, f.AuthorID)
	}
	if f.Search != "" {
		clauses = append(clauses, "(instr(lower(title), lower(?)) > 0 OR instr(lower(body), lower(?)) > 0)")
		args = append(args, f.Search, f.Search)
	}
	if !f.PublishFrom.IsZero() {
		clauses = append(clauses, "publish_at >= ?")
		args = append(args, toMillis(f.PublishFrom))
	}
	if !f.PublishTo.IsZero() {
		clauses = append(clauses, "publish_at < ?")
		args = append(args, toMillis(f.PublishTo))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Create inserts a new post.
func (r *PostRepository) Create(post *models.Post) error {
	res, err := r.db.Exec(
		`INSERT INTO posts (title, topic, slug, author_id, body, image, tags, publish_at, publish_date, created_at, updated_at, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Title, post.Topic, post.Slug, post.AuthorID, post.Body, post.Image, encodeTags(post.Tags),
		toMillis(post.Publish), post.PublishDate().Format(time.DateOnly),
		toMillis(post.Created), toMillis(post.Updated), string(post.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrSlugTaken
		}
		return fmt.Errorf("create post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	post.ID = int(id)
	return nil
}

// GetByID returns one post.
func (r *PostRepository) GetByID(id int) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRow("SELECT "+postColumns+" FROM posts WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

// GetBySlug returns the post with slug published on the given day.
func (r *PostRepository) GetBySlug(publishDate time.Time, slug string) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRow(
		"SELECT "+postColumns+" FROM posts WHERE publish_date = ? AND slug = ?",
		models.DateOf(publishDate).Format(time.DateOnly), slug,
	))
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

// List returns matching posts newest first.
func (r *PostRepository) List(filter repositories.PostFilter, limit, offset int) ([]*models.Post, error) {
	where, args := postWhere(filter)
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := r.db.Query(
		"SELECT "+postColumns+" FROM posts"+where+" ORDER BY publish_at DESC, id DESC LIMIT ? OFFSET ?",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Count returns the number of matching posts.
func (r *PostRepository) Count(filter repositories.PostFilter) (int, error) {
	where, args := postWhere(filter)
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM posts"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// Update rewrites every column of an existing post.
func (r *PostRepository) Update(post *models.Post) error {
	res, err := r.db.Exec(
		`UPDATE posts SET title = ?, topic = ?, slug = ?, author_id = ?, body = ?, image = ?, tags = ?,
		   publish_at = ?, publish_date = ?, updated_at = ?, status = ?
		 WHERE id = ?`,
		post.Title, post.Topic, post.Slug, post.AuthorID, post.Body, post.Image, encodeTags(post.Tags),
		toMillis(post.Publish), post.PublishDate().Format(time.DateOnly), toMillis(post.Updated),
		string(post.Status), post.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrSlugTaken
		}
		return fmt.Errorf("update post: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a post; its comments go with it through the foreign key.
func (r *PostRepository) Delete(id int) error {
	res, err := r.db.Exec("DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireAffected(res)
}
