package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mysite/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiList struct {
	Page     int `json:"page"`
	NumPages int `json:"num_pages"`
	Count    int `json:"count"`
	Posts    []struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
		Path   string `json:"path"`
	} `json:"posts"`
}

func TestAPIRoutes(t *testing.T) {
	app := setupTestApp(t)
	post := app.createPost(t, "Test Post", models.StatusPublished, publishDay, "go")
	app.createPost(t, "Draft Post", models.StatusDraft, publishDay)
	_, err := app.svc.Comments.Submit(post.ID, models.CommentForm{Name: "Ann", Email: "ann@example.com", Body: "Hi"})
	require.NoError(t, err)

	t.Run("GET /api/posts/ returns list with pagination", func(t *testing.T) {
		w := app.get("/api/posts/")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var res apiList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 1, res.NumPages)
		assert.Equal(t, 1, res.Count)
		require.Len(t, res.Posts, 1)
		assert.Equal(t, post.ID, res.Posts[0].ID)
		assert.Equal(t, "Test Post", res.Posts[0].Title)
		assert.Equal(t, "admin", res.Posts[0].Author)
		assert.Equal(t, "/2024/5/17/test-post/", res.Posts[0].Path)
	})

	t.Run("tag query", func(t *testing.T) {
		w := app.get("/api/posts/?tag=rust")
		require.Equal(t, http.StatusOK, w.Code)
		var res apiList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Empty(t, res.Posts)
	})

	t.Run("Accept header on the web route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/json")
		w := app.do(req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("detail with comments", func(t *testing.T) {
		w := app.get("/api/2024/5/17/test-post/")
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Title    string   `json:"title"`
			Tags     []string `json:"tags"`
			Comments []struct {
				Name string `json:"name"`
			} `json:"comments"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "Test Post", res.Title)
		assert.Equal(t, []string{"go"}, res.Tags)
		require.Len(t, res.Comments, 1)
		assert.Equal(t, "Ann", res.Comments[0].Name)
	})

	t.Run("detail not found is JSON", func(t *testing.T) {
		w := app.get("/api/2024/5/17/draft-post/")
		require.Equal(t, http.StatusNotFound, w.Code)
		var res map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "No post matches the given query.", res["error"])
	})

	t.Run("unknown API path", func(t *testing.T) {
		w := app.get("/api/nothing")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})
}
