package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"mysite/app/models"
	"mysite/app/pagination"
	"mysite/app/services"
	"mysite/app/views"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService  *services.PostService
	shareService *services.ShareService
	templates    Templates
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, shareService *services.ShareService, templates Templates) *PostController {
	return &PostController{
		postService:  postService,
		shareService: shareService,
		templates:    templates,
	}
}

// postJSON is the API representation of a post.
type postJSON struct {
	*models.Post
	Author   string            `json:"author,omitempty"`
	Path     string            `json:"path"`
	Comments []*models.Comment `json:"comments,omitempty"`
}

func newPostJSON(post *models.Post) postJSON {
	out := postJSON{Post: post, Path: post.AbsolutePath(), Comments: post.Comments}
	if post.Author != nil {
		out.Author = post.Author.Username
	}
	return out
}

type listData struct {
	Page *pagination.Page[*models.Post]
	Tag  string
}

// Index lists published posts, three per page, optionally by tag
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag_slug"]
	if tag == "" && isAPI(r) {
		tag = r.URL.Query().Get("tag")
	}

	page, err := pc.postService.ListPublished(r.URL.Query().Get("page"), tag)
	if err != nil {
		internalError(w, r, pc.templates, err)
		return
	}

	if isAPI(r) {
		posts := make([]postJSON, 0, len(page.Items))
		for _, p := range page.Items {
			posts = append(posts, newPostJSON(p))
		}
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"posts":     posts,
			"page":      page.Number,
			"num_pages": page.NumPages(),
			"count":     page.Count(),
			"tag":       tag,
		})
		return
	}
	render(w, pc.templates, views.PostList, http.StatusOK, listData{Page: page, Tag: tag})
}

type detailData struct {
	Post   *models.Post
	Form   models.CommentForm
	Errors models.FormErrors
}

// Detail shows a published post by publish date and slug
func (pc *PostController) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, errY := strconv.Atoi(vars["year"])
	month, errM := strconv.Atoi(vars["month"])
	day, errD := strconv.Atoi(vars["day"])
	if errY != nil || errM != nil || errD != nil {
		sendError(w, r, pc.templates, "No post matches the given query.", http.StatusNotFound)
		return
	}

	post, err := pc.postService.GetPublishedByDate(year, month, day, vars["post"])
	if errors.Is(err, services.ErrPostNotFound) {
		sendError(w, r, pc.templates, "No post matches the given query.", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, r, pc.templates, err)
		return
	}

	if isAPI(r) {
		sendJSON(w, http.StatusOK, newPostJSON(post))
		return
	}
	render(w, pc.templates, views.PostDetail, http.StatusOK, detailData{Post: post})
}

type shareData struct {
	Post   *models.Post
	Form   models.EmailPostForm
	Errors models.FormErrors
	Sent   bool
}

// Share shows the recommend-by-email form and sends it on POST
func (pc *PostController) Share(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["post_id"])
	if err != nil {
		sendError(w, r, pc.templates, "Invalid post ID", http.StatusNotFound)
		return
	}

	post, err := pc.postService.GetPublished(id)
	if errors.Is(err, services.ErrPostNotFound) {
		sendError(w, r, pc.templates, "No post matches the given query.", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, r, pc.templates, err)
		return
	}

	data := shareData{Post: post}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, pc.templates, "Failed to parse form", http.StatusBadRequest)
			return
		}
		data.Form = models.EmailPostFormFromValues(r.PostForm)

		data.Errors, err = pc.shareService.Share(post, data.Form, absoluteURL(r, post.AbsolutePath()))
		if err != nil {
			internalError(w, r, pc.templates, err)
			return
		}
		data.Sent = data.Errors == nil
	}
	render(w, pc.templates, views.PostShare, http.StatusOK, data)
}
