package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"mysite/app/models"
	"mysite/app/services"
	"mysite/app/views"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	templates      Templates
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, templates Templates) *CommentController {
	return &CommentController{
		commentService: commentService,
		templates:      templates,
	}
}

type commentData struct {
	Post    *models.Post
	Form    models.CommentForm
	Errors  models.FormErrors
	Comment *models.Comment
}

// Create adds a comment to a published post. Only POST is accepted.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		sendError(w, r, cc.templates, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, err := strconv.Atoi(mux.Vars(r)["post_id"])
	if err != nil {
		sendError(w, r, cc.templates, "Invalid post ID", http.StatusNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		sendError(w, r, cc.templates, "Failed to parse form", http.StatusBadRequest)
		return
	}

	sub, err := cc.commentService.Submit(postID, models.CommentFormFromValues(r.PostForm))
	if errors.Is(err, services.ErrPostNotFound) {
		sendError(w, r, cc.templates, "No post matches the given query.", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, r, cc.templates, err)
		return
	}

	render(w, cc.templates, views.PostComment, http.StatusOK, commentData{
		Post:    sub.Post,
		Form:    sub.Form,
		Errors:  sub.Errors,
		Comment: sub.Comment,
	})
}
