package repositories

import (
	"time"

	"mysite/app/models"
)

// PostRepository defines the interface for post data access.
// List results are ordered by publish time, newest first.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	GetBySlug(publishDate time.Time, slug string) (*models.Post, error)
	List(filter PostFilter, limit, offset int) ([]*models.Post, error)
	Count(filter PostFilter) (int, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access.
// Comments are returned oldest first.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int, activeOnly bool) ([]*models.Comment, error)
	List(filter CommentFilter) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}

// UserRepository defines the interface for author data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List() ([]*models.User, error)
}

// Store bundles the repositories of one storage backend.
type Store interface {
	Posts() PostRepository
	Comments() CommentRepository
	Users() UserRepository
	Close() error
}
