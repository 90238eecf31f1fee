package routes

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"mysite/app/mailer"
	"mysite/app/models"
	"mysite/app/repositories/mock"
	"mysite/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *mux.Router
	store  *mock.Store
	outbox *mailer.Outbox
	svc    *Services
	author *models.User
}

var publishDay = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	// Keep request logs out of test output.
	prev := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(prev) })

	store := mock.NewStore()
	outbox := &mailer.Outbox{}
	svc := NewServices(store, outbox, "blog@example.com")

	router, err := SetupRoutes(svc)
	require.NoError(t, err)

	author, err := services.NewUserService(store.Users()).CreateUser("admin", "admin@example.com", "secret")
	require.NoError(t, err)

	return &testApp{router: router, store: store, outbox: outbox, svc: svc, author: author}
}

func (a *testApp) createPost(t *testing.T, title string, status models.Status, publish time.Time, tags ...string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		AuthorID: a.author.ID,
		Body:     "Body of " + title,
		Publish:  publish,
		Status:   status,
		Tags:     tags,
	}
	require.NoError(t, a.svc.Posts.CreatePost(post))
	return post
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}
