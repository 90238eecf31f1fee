package routes

import (
	"testing"

	"mysite/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedRoutesReverse(t *testing.T) {
	app := setupTestApp(t)
	urlFor := URLFunc(app.router)

	tests := []struct {
		name  string
		pairs []string
		want  string
	}{
		{PostList, nil, "/"},
		{PostListByTag, []string{"tag_slug", "go"}, "/tag/go/"},
		{PostDetail, []string{"year", "2024", "month", "1", "day", "2", "post", "hello"}, "/2024/1/2/hello/"},
		{PostShare, []string{"post_id", "4"}, "/4/share/"},
		{PostComment, []string{"post_id", "4"}, "/4/comment/"},
		{APIPostList, nil, "/api/posts/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := urlFor(tt.name, tt.pairs...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := urlFor("no_such_route")
	assert.Error(t, err)

	// Values must satisfy the route patterns.
	_, err = urlFor(PostShare, "post_id", "abc")
	assert.Error(t, err)
}

func TestPostURLMatchesAbsolutePath(t *testing.T) {
	app := setupTestApp(t)
	post := app.createPost(t, "Reverse Me", models.StatusPublished, publishDay)

	got, err := PostURL(app.router, post)
	require.NoError(t, err)
	assert.Equal(t, post.AbsolutePath(), got)
	assert.Equal(t, "/2024/5/17/reverse-me/", got)
}
