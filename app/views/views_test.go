package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mysite/app/models"
	"mysite/app/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubURL(name string, pairs ...string) (string, error) {
	return "/" + name + "/" + strings.Join(pairs, "/"), nil
}

func render(t *testing.T, page string, data any) string {
	t.Helper()
	templates, err := Load(stubURL)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, templates[page].ExecuteTemplate(&buf, "layout", data))
	return buf.String()
}

var samplePost = &models.Post{
	ID:      4,
	Title:   "Hello <World>",
	Slug:    "hello-world",
	Body:    "First paragraph.\n\nSecond & last.",
	Tags:    []string{"go", "web"},
	Publish: time.Date(2024, 5, 17, 14, 5, 0, 0, time.UTC),
	Status:  models.StatusPublished,
	Author:  &models.User{Username: "admin"},
}

func TestLoadParsesEveryPage(t *testing.T) {
	templates, err := Load(stubURL)
	require.NoError(t, err)
	for name := range pages {
		assert.NotNil(t, templates[name].Lookup("layout"), name)
		assert.NotNil(t, templates[name].Lookup("content"), name)
	}
}

func TestListPage(t *testing.T) {
	p := pagination.New(4, 3)
	page := pagination.NewPage(p, 1, []*models.Post{samplePost})
	out := render(t, PostList, map[string]any{"Page": page, "Tag": "go"})

	assert.Contains(t, out, `Posts tagged with "go"`)
	assert.Contains(t, out, `<a href="/2024/5/17/hello-world/">Hello &lt;World&gt;</a>`)
	assert.Contains(t, out, `<a href="/post_list_by_tag/tag_slug/web">web</a>`)
	assert.Contains(t, out, "Published May 17, 2024, 2:05 p.m. by admin")
	assert.Contains(t, out, "Page 1 of 2.")
	assert.Contains(t, out, `<a href="?page=2">Next</a>`)
	assert.NotContains(t, out, "Previous")
}

func TestListPageEmpty(t *testing.T) {
	page := pagination.NewPage(pagination.New(0, 3), 1, []*models.Post{})
	out := render(t, PostList, map[string]any{"Page": page, "Tag": ""})
	assert.Contains(t, out, "There are no posts yet.")
	assert.NotContains(t, out, "tagged with")
}

func TestDetailPage(t *testing.T) {
	post := *samplePost
	post.Comments = []*models.Comment{
		{Name: "Ann", Body: "Nice", Created: samplePost.Publish},
	}
	out := render(t, PostDetail, map[string]any{
		"Post":   &post,
		"Form":   models.CommentForm{},
		"Errors": models.FormErrors(nil),
	})

	assert.Contains(t, out, "<p>First paragraph.</p>")
	assert.Contains(t, out, "<p>Second &amp; last.</p>")
	assert.Contains(t, out, "1 comment</h2>")
	assert.Contains(t, out, "Comment 1 by Ann")
	assert.Contains(t, out, `action="/post_comment/post_id/4"`)
	assert.Contains(t, out, `href="/post_share/post_id/4"`)
}

func TestCommentPageShowsErrors(t *testing.T) {
	out := render(t, PostComment, map[string]any{
		"Post":    samplePost,
		"Form":    models.CommentForm{Name: "Ann", Email: "bad"},
		"Errors":  models.FormErrors{"email": "Enter a valid email address."},
		"Comment": (*models.Comment)(nil),
	})
	assert.Contains(t, out, "Enter a valid email address.")
	assert.Contains(t, out, `value="bad"`)
	assert.NotContains(t, out, "Your comment has been added.")
}

func TestSharePage(t *testing.T) {
	out := render(t, PostShare, map[string]any{
		"Post":   samplePost,
		"Form":   models.EmailPostForm{To: "bob@example.com"},
		"Errors": models.FormErrors(nil),
		"Sent":   true,
	})
	assert.Contains(t, out, "E-mail successfully sent")
	assert.Contains(t, out, "bob@example.com")
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "one two", TruncateWords(2, "one two"))
	assert.Equal(t, "one two …", TruncateWords(2, "one two three"))
}

func TestLinebreaks(t *testing.T) {
	assert.Equal(t, "<p>a<br>b</p>\n\n<p>&lt;c&gt;</p>", string(Linebreaks("a\nb\n\n\n<c>")))
	assert.Equal(t, "", string(Linebreaks("  ")))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "January 2, 2024, 9:30 a.m.", FormatDate(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "January 2, 2024, 12:00 p.m.", FormatDate(time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)))
}
