package services

import (
	"errors"
	"fmt"
	"time"

	"mysite/app/models"
	"mysite/app/pagination"
	"mysite/app/repositories"
)

// PostsPerPage is the public list page size.
const PostsPerPage = 3

var (
	// ErrPostNotFound covers both missing and unpublished posts on public paths.
	ErrPostNotFound   = errors.New("post not found")
	ErrAuthorNotFound = errors.New("author not found")
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// ListPublished returns one page of published posts, newest first, optionally
// restricted to a tag. rawPage is the untrusted page query value.
func (s *PostService) ListPublished(rawPage, tag string) (*pagination.Page[*models.Post], error) {
	filter := repositories.Published()
	filter.Tag = tag

	count, err := s.postRepo.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	p := pagination.New(count, PostsPerPage)
	number := p.Resolve(rawPage)
	offset, limit := p.Bounds(number)

	posts := []*models.Post{}
	if limit > 0 {
		posts, err = s.postRepo.List(filter, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}
	}
	if err := s.attachAuthors(posts); err != nil {
		return nil, err
	}
	return pagination.NewPage(p, number, posts), nil
}

// GetPublished retrieves a published post by ID
func (s *PostService) GetPublished(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// GetPublishedByDate retrieves the published post with slug on the given
// calendar day, together with its author and active comments.
func (s *PostService) GetPublishedByDate(year, month, day int, slug string) (*models.Post, error) {
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject dates time.Date had to normalize, such as 2024/2/30.
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return nil, ErrPostNotFound
	}

	post, err := s.postRepo.GetBySlug(date, slug)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(post.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, c := range comments {
		if err := post.AddComment(c); err != nil {
			return nil, err
		}
	}

	if err := s.attachAuthors([]*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// attachAuthors loads each post's author. A missing author is left nil.
func (s *PostService) attachAuthors(posts []*models.Post) error {
	authors := make(map[int]*models.User)
	for _, post := range posts {
		author, seen := authors[post.AuthorID]
		if !seen {
			var err error
			author, err = s.userRepo.GetByID(post.AuthorID)
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("failed to get author %d: %w", post.AuthorID, err)
			}
			authors[post.AuthorID] = author
		}
		post.Author = author
	}
	return nil
}

// GetPost retrieves any post by ID, regardless of status
func (s *PostService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPosts is the admin listing: every status, filtered and windowed
func (s *PostService) ListPosts(filter repositories.PostFilter, limit, offset int) ([]*models.Post, error) {
	posts, err := s.postRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost fills defaults, validates and stores a new post
func (s *PostService) CreatePost(post *models.Post) error {
	post.BeforeCreate()

	// Validate post
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	// Verify author exists
	if _, err := s.userRepo.GetByID(post.AuthorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}

	return s.postRepo.Create(post)
}

// UpdatePost validates and stores changes to an existing post
func (s *PostService) UpdatePost(post *models.Post) error {
	// Verify post exists
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	// Preserve creation time
	post.Created = existing.Created
	post.BeforeUpdate()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Update(post)
}

// SetStatus publishes or withdraws a post
func (s *PostService) SetStatus(id int, status models.Status) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	post.Status = status
	if err := s.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post; the store removes its comments
func (s *PostService) DeletePost(id int) error {
	return s.postRepo.Delete(id)
}
