package services

import (
	"fmt"
	"testing"
	"time"

	"mysite/app/mailer"
	"mysite/app/models"
	"mysite/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *mock.Store
	posts    *PostService
	comments *CommentService
	users    *UserService
	outbox   *mailer.Outbox
	share    *ShareService
	author   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := mock.NewStore()
	f := &fixture{store: store, outbox: &mailer.Outbox{}}
	f.posts = NewPostService(store.Posts(), store.Comments(), store.Users())
	f.comments = NewCommentService(store.Comments(), f.posts)
	f.users = NewUserService(store.Users())
	f.share = NewShareService(f.outbox, "blog@example.com")

	author, err := f.users.CreateUser("admin", "admin@example.com", "secret")
	require.NoError(t, err)
	f.author = author
	return f
}

var baseTime = time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)

// publishN stores n published posts one day apart, oldest first.
func (f *fixture) publishN(t *testing.T, n int) []*models.Post {
	t.Helper()
	var out []*models.Post
	for i := 0; i < n; i++ {
		out = append(out, f.newPost(t, fmt.Sprintf("Post %d", i+1), models.StatusPublished, baseTime.AddDate(0, 0, i)))
	}
	return out
}

func (f *fixture) newPost(t *testing.T, title string, status models.Status, publish time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		AuthorID: f.author.ID,
		Body:     "Body of " + title,
		Publish:  publish,
		Status:   status,
	}
	require.NoError(t, f.posts.CreatePost(post))
	return post
}
