package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"mysite/app/models"
	"mysite/app/repositories"
)

// CommentRepository implements repositories.CommentRepository.
type CommentRepository struct {
	db *sql.DB
}

const commentColumns = `id, post_id, name, email, body, created_at, updated_at, active`

func scanComment(row rowScanner) (*models.Comment, error) {
	var (
		comment          models.Comment
		created, updated int64
	)
	if err := row.Scan(&comment.ID, &comment.PostID, &comment.Name, &comment.Email, &comment.Body,
		&created, &updated, &comment.Active); err != nil {
		return nil, err
	}
	comment.Created = fromMillis(created)
	comment.Updated = fromMillis(updated)
	return &comment, nil
}

// Create inserts a comment for an existing post.
func (r *CommentRepository) Create(comment *models.Comment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var found int
	if err := tx.QueryRow("SELECT 1 FROM posts WHERE id = ?", comment.PostID).Scan(&found); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("post %d: %w", comment.PostID, repositories.ErrNotFound)
		}
		return err
	}

	res, err := tx.Exec(
		`INSERT INTO comments (post_id, name, email, body, created_at, updated_at, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		comment.PostID, comment.Name, comment.Email, comment.Body,
		toMillis(comment.Created), toMillis(comment.Updated), comment.Active,
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	comment.ID = int(id)
	return nil
}

// GetByID returns one comment.
func (r *CommentRepository) GetByID(id int) (*models.Comment, error) {
	comment, err := scanComment(r.db.QueryRow("SELECT "+commentColumns+" FROM comments WHERE id = ?", id))
	if err != nil {
		return nil, notFound(err)
	}
	return comment, nil
}

// ListByPost returns a post's comments oldest first.
func (r *CommentRepository) ListByPost(postID int, activeOnly bool) ([]*models.Comment, error) {
	filter := repositories.CommentFilter{PostID: postID}
	if activeOnly {
		active := true
		filter.Active = &active
	}
	return r.List(filter)
}

// List returns matching comments oldest first.
func (r *CommentRepository) List(filter repositories.CommentFilter) ([]*models.Comment, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.PostID != 0 {
		clauses = append(clauses, "post_id = ?")
		args = append(args, filter.PostID)
	}
	if filter.Active != nil {
		clauses = append(clauses, "active = ?")
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		clauses = append(clauses,
			"(instr(lower(name), lower(?)) > 0 OR instr(lower(email), lower(?)) > 0 OR instr(lower(body), lower(?)) > 0)")
		args = append(args, filter.Search, filter.Search, filter.Search)
	}
	query := "SELECT " + commentColumns + " FROM comments"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Update rewrites an existing comment. The owning post never changes.
func (r *CommentRepository) Update(comment *models.Comment) error {
	res, err := r.db.Exec(
		`UPDATE comments SET name = ?, email = ?, body = ?, updated_at = ?, active = ? WHERE id = ?`,
		comment.Name, comment.Email, comment.Body, toMillis(comment.Updated), comment.Active, comment.ID,
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a comment.
func (r *CommentRepository) Delete(id int) error {
	res, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireAffected(res)
}
