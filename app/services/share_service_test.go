package services

import (
	"errors"
	"testing"

	"mysite/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShare(t *testing.T) {
	f := newFixture(t)
	post := f.newPost(t, "Worth Reading", models.StatusPublished, baseTime)
	url := "http://example.com" + post.AbsolutePath()

	t.Run("sends one email", func(t *testing.T) {
		form := models.EmailPostForm{Name: "Ann", Email: "ann@example.com", To: "bob@example.com", Comments: "You will like it"}
		errs, err := f.share.Share(post, form, url)
		require.NoError(t, err)
		assert.Nil(t, errs)

		msgs := f.outbox.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "blog@example.com", msgs[0].From)
		assert.Equal(t, []string{"bob@example.com"}, msgs[0].To)
		assert.Equal(t, "Ann recommends you read Worth Reading", msgs[0].Subject)
		assert.Equal(t,
			"Read Worth Reading at http://example.com/2024/5/17/worth-reading/\n\nAnn's comments: You will like it",
			msgs[0].Body)
	})

	t.Run("invalid form sends nothing", func(t *testing.T) {
		before := len(f.outbox.Messages())
		errs, err := f.share.Share(post, models.EmailPostForm{Name: "Ann", Email: "ann@example.com", To: "nope"}, url)
		require.NoError(t, err)
		assert.True(t, errs.Has("to"))
		assert.Len(t, f.outbox.Messages(), before)
	})

	t.Run("mailer failure", func(t *testing.T) {
		f.outbox.Err = errors.New("relay down")
		defer func() { f.outbox.Err = nil }()

		form := models.EmailPostForm{Name: "Ann", Email: "ann@example.com", To: "bob@example.com"}
		_, err := f.share.Share(post, form, url)
		assert.ErrorContains(t, err, "relay down")
	})
}

func TestShareMessageWithoutComments(t *testing.T) {
	post := &models.Post{Title: "Quiet"}
	msg := ShareMessage(post, models.EmailPostForm{Name: "Ann", To: "bob@example.com"}, "http://x/1/", "from@example.com")
	assert.Equal(t, "Read Quiet at http://x/1/\n\nAnn's comments: ", msg.Body)
}
