// Package repotest holds the behaviour every repositories.Store backend must share.
package repotest

import (
	"testing"
	"time"

	"mysite/app/models"
	"mysite/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// OpenFunc returns a fresh, empty store. It should register its own cleanup.
type OpenFunc func(t *testing.T) repositories.Store

// RunStoreTests exercises users, posts and comments against a backend.
func RunStoreTests(t *testing.T, open OpenFunc) {
	t.Run("users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("posts", func(t *testing.T) { testPosts(t, open(t)) })
	t.Run("post listing", func(t *testing.T) { testPostListing(t, open(t)) })
	t.Run("comments", func(t *testing.T) { testComments(t, open(t)) })
	t.Run("cascade delete", func(t *testing.T) { testCascadeDelete(t, open(t)) })
}

var day = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

// SeedUser stores an author.
func SeedUser(t *testing.T, store repositories.Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	user.BeforeCreate()
	require.NoError(t, store.Users().Create(user))
	return user
}

// SeedPost stores a post with sensible defaults; mutate adjusts it before insert.
func SeedPost(t *testing.T, store repositories.Store, authorID int, title string, mutate func(p *models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		AuthorID: authorID,
		Body:     "Body of " + title,
		Publish:  day,
		Status:   models.StatusPublished,
	}
	if mutate != nil {
		mutate(post)
	}
	post.BeforeCreate()
	require.NoError(t, store.Posts().Create(post))
	return post
}

// SeedComment stores an active comment.
func SeedComment(t *testing.T, store repositories.Store, postID int, name string, created time.Time) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		PostID:  postID,
		Name:    name,
		Email:   "reader@example.com",
		Body:    "Comment from " + name,
		Created: created,
	}
	comment.BeforeCreate()
	require.NoError(t, store.Comments().Create(comment))
	return comment
}

func testUsers(t *testing.T, store repositories.Store) {
	users := store.Users()

	admin := SeedUser(t, store, "admin")
	assert.Equal(t, 1, admin.ID)
	SeedUser(t, store, "editor")

	dup := &models.User{Username: "admin", PasswordHash: "x"}
	assert.ErrorIs(t, users.Create(dup), repositories.ErrUsernameTaken)

	got, err := users.GetByID(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, "admin@example.com", got.Email)

	got, err = users.GetByUsername("editor")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ID)

	_, err = users.GetByUsername("nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = users.GetByID(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	all, err := users.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "admin", all[0].Username)
}

func testPosts(t *testing.T, store repositories.Store) {
	posts := store.Posts()
	author := SeedUser(t, store, "author")

	first := SeedPost(t, store, author.ID, "Hello World", func(p *models.Post) {
		p.Tags = []string{"intro"}
		p.Image = "posts/2024/05/17/hello.png"
	})
	assert.Equal(t, 1, first.ID)

	t.Run("get by id", func(t *testing.T) {
		got, err := posts.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello World", got.Title)
		assert.Equal(t, "hello-world", got.Slug)
		assert.Equal(t, []string{"intro"}, got.Tags)
		assert.Equal(t, "posts/2024/05/17/hello.png", got.Image)
		assert.Equal(t, models.StatusPublished, got.Status)
		assert.True(t, got.Publish.Equal(day))

		_, err = posts.GetByID(999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("slug unique per publish date", func(t *testing.T) {
		clash := &models.Post{Title: "Hello World", AuthorID: author.ID, Body: "b", Publish: day.Add(3 * time.Hour)}
		clash.BeforeCreate()
		assert.ErrorIs(t, posts.Create(clash), repositories.ErrSlugTaken)

		nextDay := &models.Post{Title: "Hello World", AuthorID: author.ID, Body: "b", Publish: day.AddDate(0, 0, 1)}
		nextDay.BeforeCreate()
		require.NoError(t, posts.Create(nextDay))
		assert.NotEqual(t, first.ID, nextDay.ID)
	})

	t.Run("get by slug", func(t *testing.T) {
		got, err := posts.GetBySlug(models.DateOf(day), "hello-world")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		_, err = posts.GetBySlug(models.DateOf(day).AddDate(0, 0, 2), "hello-world")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		got, err := posts.GetByID(first.ID)
		require.NoError(t, err)
		got.Title = "Hello Again"
		got.Slug = "hello-again"
		got.Status = models.StatusDraft
		got.BeforeUpdate()
		require.NoError(t, posts.Update(got))

		updated, err := posts.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello Again", updated.Title)
		assert.Equal(t, models.StatusDraft, updated.Status)

		_, err = posts.GetBySlug(models.DateOf(day), "hello-world")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		moved, err := posts.GetBySlug(models.DateOf(day), "hello-again")
		require.NoError(t, err)
		assert.Equal(t, first.ID, moved.ID)
	})

	t.Run("update into taken slug", func(t *testing.T) {
		other := SeedPost(t, store, author.ID, "Second", nil)
		other.Slug = "hello-again"
		assert.ErrorIs(t, posts.Update(other), repositories.ErrSlugTaken)

		missing := &models.Post{ID: 999, Title: "x", Slug: "x", Publish: day}
		assert.ErrorIs(t, posts.Update(missing), repositories.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, posts.Delete(first.ID))
		_, err := posts.GetByID(first.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, posts.Delete(first.ID), repositories.ErrNotFound)

		// The slug is free again once the post is gone.
		again := SeedPost(t, store, author.ID, "Hello Again", nil)
		assert.Equal(t, "hello-again", again.Slug)
	})
}

func testPostListing(t *testing.T, store repositories.Store) {
	posts := store.Posts()
	alice := SeedUser(t, store, "alice")
	bob := SeedUser(t, store, "bob")

	oldest := SeedPost(t, store, alice.ID, "Oldest", func(p *models.Post) {
		p.Publish = day.AddDate(0, 0, -2)
		p.Tags = []string{"go"}
	})
	draft := SeedPost(t, store, alice.ID, "Draft Notes", func(p *models.Post) {
		p.Publish = day.AddDate(0, 0, -1)
		p.Status = models.StatusDraft
		p.Tags = []string{"go"}
	})
	middle := SeedPost(t, store, bob.ID, "Jazz Guitar", func(p *models.Post) {
		p.Publish = day
		p.Topic = "music"
		p.Body = "Django Reinhardt played gypsy jazz"
	})
	newest := SeedPost(t, store, bob.ID, "Newest", func(p *models.Post) {
		p.Publish = day.AddDate(0, 0, 1)
		p.Tags = []string{"go", "web"}
	})

	ids := func(list []*models.Post) []int {
		out := make([]int, 0, len(list))
		for _, p := range list {
			out = append(out, p.ID)
		}
		return out
	}

	t.Run("all posts newest first", func(t *testing.T) {
		all, err := posts.List(repositories.PostFilter{}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{newest.ID, middle.ID, draft.ID, oldest.ID}, ids(all))
	})

	t.Run("published only", func(t *testing.T) {
		list, err := posts.List(repositories.Published(), 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{newest.ID, middle.ID, oldest.ID}, ids(list))

		n, err := posts.Count(repositories.Published())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("limit and offset", func(t *testing.T) {
		list, err := posts.List(repositories.Published(), 2, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{newest.ID, middle.ID}, ids(list))

		list, err = posts.List(repositories.Published(), 2, 2)
		require.NoError(t, err)
		assert.Equal(t, []int{oldest.ID}, ids(list))

		list, err = posts.List(repositories.Published(), 2, 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("filters", func(t *testing.T) {
		byTag := repositories.Published()
		byTag.Tag = "go"
		list, err := posts.List(byTag, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{newest.ID, oldest.ID}, ids(list))
		n, err := posts.Count(byTag)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		list, err = posts.List(repositories.PostFilter{Topic: "music"}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{middle.ID}, ids(list))

		list, err = posts.List(repositories.PostFilter{AuthorID: alice.ID}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{draft.ID, oldest.ID}, ids(list))

		list, err = posts.List(repositories.PostFilter{Status: models.StatusDraft}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{draft.ID}, ids(list))

		list, err = posts.List(repositories.PostFilter{Search: "REINHARDT"}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{middle.ID}, ids(list))

		list, err = posts.List(repositories.PostFilter{Search: "notes"}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{draft.ID}, ids(list))

		window := repositories.PostFilter{PublishFrom: day.AddDate(0, 0, -1), PublishTo: day.AddDate(0, 0, 1)}
		list, err = posts.List(window, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{middle.ID, draft.ID}, ids(list))
	})
}

func testComments(t *testing.T, store repositories.Store) {
	comments := store.Comments()
	author := SeedUser(t, store, "author")
	post := SeedPost(t, store, author.ID, "Commented", nil)
	other := SeedPost(t, store, author.ID, "Other", nil)

	orphan := &models.Comment{PostID: 999, Name: "x", Email: "x@example.com", Body: "x"}
	orphan.BeforeCreate()
	assert.ErrorIs(t, comments.Create(orphan), repositories.ErrNotFound)

	late := SeedComment(t, store, post.ID, "Late", day.Add(2*time.Hour))
	early := SeedComment(t, store, post.ID, "Early", day.Add(time.Hour))
	elsewhere := SeedComment(t, store, other.ID, "Elsewhere", day)

	t.Run("get by id", func(t *testing.T) {
		got, err := comments.GetByID(early.ID)
		require.NoError(t, err)
		assert.Equal(t, "Early", got.Name)
		assert.Equal(t, post.ID, got.PostID)
		assert.True(t, got.Active)

		_, err = comments.GetByID(999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("list by post oldest first", func(t *testing.T) {
		list, err := comments.ListByPost(post.ID, false)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, early.ID, list[0].ID)
		assert.Equal(t, late.ID, list[1].ID)
	})

	t.Run("inactive comments hidden", func(t *testing.T) {
		got, err := comments.GetByID(late.ID)
		require.NoError(t, err)
		got.Active = false
		got.BeforeUpdate()
		require.NoError(t, comments.Update(got))

		active, err := comments.ListByPost(post.ID, true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, early.ID, active[0].ID)

		all, err := comments.ListByPost(post.ID, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("admin listing", func(t *testing.T) {
		all, err := comments.List(repositories.CommentFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, elsewhere.ID, all[0].ID)

		inactive := false
		list, err := comments.List(repositories.CommentFilter{Active: &inactive})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, late.ID, list[0].ID)

		list, err = comments.List(repositories.CommentFilter{Search: "elsewhere"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, elsewhere.ID, list[0].ID)

		list, err = comments.List(repositories.CommentFilter{PostID: other.ID})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("update and delete", func(t *testing.T) {
		missing := &models.Comment{ID: 999, PostID: post.ID}
		assert.ErrorIs(t, comments.Update(missing), repositories.ErrNotFound)

		require.NoError(t, comments.Delete(elsewhere.ID))
		_, err := comments.GetByID(elsewhere.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, comments.Delete(elsewhere.ID), repositories.ErrNotFound)
	})
}

func testCascadeDelete(t *testing.T, store repositories.Store) {
	author := SeedUser(t, store, "author")
	post := SeedPost(t, store, author.ID, "Doomed", nil)
	keep := SeedPost(t, store, author.ID, "Kept", nil)
	SeedComment(t, store, post.ID, "a", day)
	SeedComment(t, store, post.ID, "b", day)
	kept := SeedComment(t, store, keep.ID, "c", day)

	require.NoError(t, store.Posts().Delete(post.ID))

	list, err := store.Comments().ListByPost(post.ID, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err := store.Comments().List(repositories.CommentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)
}
