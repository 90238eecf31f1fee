package routes

import (
	"fmt"
	"net/http"

	"mysite/app/controllers"
	"mysite/app/mailer"
	"mysite/app/middleware"
	"mysite/app/models"
	"mysite/app/repositories"
	"mysite/app/services"
	"mysite/app/views"

	"github.com/gorilla/mux"
)

// Route names, for reversal with Router.Get(name).URL(...).
const (
	PostList      = "post_list"
	PostListByTag = "post_list_by_tag"
	PostDetail    = "post_detail"
	PostShare     = "post_share"
	PostComment   = "post_comment"

	APIPostList   = "api_post_list"
	APIPostDetail = "api_post_detail"
)

const datePath = `/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{post:[-\w]+}/`

// Services bundles what the handlers depend on.
type Services struct {
	Posts    *services.PostService
	Comments *services.CommentService
	Share    *services.ShareService
}

// NewServices wires the services over a store and a mailer.
func NewServices(store repositories.Store, m mailer.Mailer, mailFrom string) *Services {
	posts := services.NewPostService(store.Posts(), store.Comments(), store.Users())
	return &Services{
		Posts:    posts,
		Comments: services.NewCommentService(store.Comments(), posts),
		Share:    services.NewShareService(m, mailFrom),
	}
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(svc *Services) (*mux.Router, error) {
	router := mux.NewRouter()

	templates, err := views.Load(URLFunc(router))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	postController := controllers.NewPostController(svc.Posts, svc.Share, templates)
	commentController := controllers.NewCommentController(svc.Comments, templates)

	// Unmatched requests skip router middleware, so wrap them here.
	wrap := func(h http.Handler) http.Handler {
		return middleware.RequestID(middleware.Logger(middleware.ContentTypeJSON(h)))
	}
	router.NotFoundHandler = wrap(controllers.NotFound(templates))
	router.MethodNotAllowedHandler = wrap(controllers.MethodNotAllowed(templates))

	// Read-only JSON API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts/", postController.Index).Methods(http.MethodGet).Name(APIPostList)
	api.HandleFunc(datePath, postController.Detail).Methods(http.MethodGet).Name(APIPostDetail)

	// Web routes
	router.HandleFunc("/", postController.Index).Methods(http.MethodGet, http.MethodHead).Name(PostList)
	router.HandleFunc(`/tag/{tag_slug:[-\w]+}/`, postController.Index).Methods(http.MethodGet, http.MethodHead).Name(PostListByTag)
	router.HandleFunc(datePath, postController.Detail).Methods(http.MethodGet, http.MethodHead).Name(PostDetail)
	router.HandleFunc(`/{post_id:[0-9]+}/share/`, postController.Share).Methods(http.MethodGet, http.MethodPost).Name(PostShare)
	// Any method reaches the controller, which answers 405 for non-POST.
	router.HandleFunc(`/{post_id:[0-9]+}/comment/`, commentController.Create).Name(PostComment)

	return router, nil
}

// URLFunc reverses named routes of router for the templates.
func URLFunc(router *mux.Router) views.URLFunc {
	return func(name string, pairs ...string) (string, error) {
		route := router.Get(name)
		if route == nil {
			return "", fmt.Errorf("no route named %q", name)
		}
		u, err := route.URL(pairs...)
		if err != nil {
			return "", fmt.Errorf("reverse %s: %w", name, err)
		}
		return u.String(), nil
	}
}

// PostURL reverses the canonical detail path of post.
func PostURL(router *mux.Router, post *models.Post) (string, error) {
	y, m, d := post.Publish.UTC().Date()
	return URLFunc(router)(PostDetail,
		"year", fmt.Sprint(y), "month", fmt.Sprint(int(m)), "day", fmt.Sprint(d), "post", post.Slug)
}
