package repositories

import (
	"sort"
	"strings"
	"time"

	"mysite/app/models"
)

// PostFilter narrows a post listing. Zero fields match everything.
type PostFilter struct {
	Status   models.Status
	Tag      string
	Topic    string
	AuthorID int
	// Search matches title or body, case-insensitively.
	Search string
	// PublishFrom is inclusive, PublishTo exclusive.
	PublishFrom time.Time
	PublishTo   time.Time
}

// Published returns a filter for publicly visible posts.
func Published() PostFilter {
	return PostFilter{Status: models.StatusPublished}
}

// Match reports whether post satisfies the filter.
func (f PostFilter) Match(post *models.Post) bool {
	if f.Status != "" && post.Status != f.Status {
		return false
	}
	if f.Tag != "" && !post.HasTag(f.Tag) {
		return false
	}
	if f.Topic != "" && post.Topic != f.Topic {
		return false
	}
	if f.AuthorID != 0 && post.AuthorID != f.AuthorID {
		return false
	}
	if f.Search != "" && !containsFold(post.Title, f.Search) && !containsFold(post.Body, f.Search) {
		return false
	}
	if !f.PublishFrom.IsZero() && post.Publish.Before(f.PublishFrom) {
		return false
	}
	if !f.PublishTo.IsZero() && !post.Publish.Before(f.PublishTo) {
		return false
	}
	return true
}

// CommentFilter narrows a comment listing. Zero fields match everything.
type CommentFilter struct {
	PostID int
	Active *bool
	// Search matches name, email or body, case-insensitively.
	Search string
}

// Match reports whether comment satisfies the filter.
func (f CommentFilter) Match(comment *models.Comment) bool {
	if f.PostID != 0 && comment.PostID != f.PostID {
		return false
	}
	if f.Active != nil && comment.Active != *f.Active {
		return false
	}
	if f.Search != "" && !containsFold(comment.Name, f.Search) &&
		!containsFold(comment.Email, f.Search) && !containsFold(comment.Body, f.Search) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SortPosts orders posts newest first, breaking ties by descending ID.
func SortPosts(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Publish.Equal(posts[j].Publish) {
			return posts[i].Publish.After(posts[j].Publish)
		}
		return posts[i].ID > posts[j].ID
	})
}

// SortComments orders comments oldest first, breaking ties by ID.
func SortComments(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].Created.Equal(comments[j].Created) {
			return comments[i].Created.Before(comments[j].Created)
		}
		return comments[i].ID < comments[j].ID
	})
}

// Window applies limit/offset to an already ordered slice. A non-positive limit means no limit.
func Window[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
