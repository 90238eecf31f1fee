package models

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.Created.IsZero() {
		return errors.New("created cannot be zero")
	}

	return nil
}

// BeforeCreate fills in defaults for fields left empty by the caller.
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.Created.IsZero() {
		p.Created = now
	}
	if p.Publish.IsZero() {
		p.Publish = now
	}
	if p.Topic == "" {
		p.Topic = DefaultTopic
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.Tags = NormalizeTags(p.Tags)
	p.Updated = now
}

// BeforeUpdate bumps the updated timestamp.
func (p *Post) BeforeUpdate() {
	p.Tags = NormalizeTags(p.Tags)
	p.Updated = time.Now().UTC()
}

// IsPublished reports whether the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// PublishDate returns the UTC calendar day the post is published on.
// Slugs are unique within a single publish date.
func (p *Post) PublishDate() time.Time {
	y, m, d := p.Publish.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AbsolutePath is the canonical detail URL path of the post.
func (p *Post) AbsolutePath() string {
	y, m, d := p.Publish.UTC().Date()
	return fmt.Sprintf("/%d/%d/%d/%s/", y, int(m), d, p.Slug)
}

// HasTag reports whether the post is tagged with the given tag slug.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}

// ParseStatus accepts either the stored code or the human label.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "DF", "df", "draft", "Draft":
		return StatusDraft, nil
	case "PB", "pb", "published", "Published":
		return StatusPublished, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Label is the human-readable status name.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPublished:
		return "Published"
	}
	return string(s)
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
