package services

import (
	"fmt"

	"mysite/app/models"
	"mysite/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	posts       *PostService
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, posts *PostService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		posts:       posts,
	}
}

// CommentSubmission is the outcome of a public comment post. Comment is set
// only when the form was valid and the comment was stored.
type CommentSubmission struct {
	Post    *models.Post
	Form    models.CommentForm
	Errors  models.FormErrors
	Comment *models.Comment
}

// Submit validates form and attaches a new comment to a published post.
// Form problems are reported in the submission, not as an error.
func (s *CommentService) Submit(postID int, form models.CommentForm) (*CommentSubmission, error) {
	post, err := s.posts.GetPublished(postID)
	if err != nil {
		return nil, err
	}

	sub := &CommentSubmission{Post: post, Form: form}
	if sub.Errors = form.Validate(); sub.Errors != nil {
		return sub, nil
	}

	comment := form.Comment(post.ID)
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	sub.Comment = comment
	return sub, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// ListComments is the admin listing over all posts
func (s *CommentService) ListComments(filter repositories.CommentFilter) ([]*models.Comment, error) {
	return s.commentRepo.List(filter)
}

// SetActive shows or hides a comment
func (s *CommentService) SetActive(id int, active bool) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	comment.Active = active
	comment.BeforeUpdate()
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(id int) error {
	return s.commentRepo.Delete(id)
}
