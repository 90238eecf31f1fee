package models

import "time"

// Status controls whether a post is publicly visible.
type Status string

const (
	StatusDraft     Status = "DF"
	StatusPublished Status = "PB"
)

// DefaultTopic is assigned to posts created without a topic.
const DefaultTopic = "topic"

// Post represents a blog post with comments.
type Post struct {
	ID       int        `json:"id" validate:"gte=0"`
	Title    string     `json:"title" validate:"required,max=250"`
	Topic    string     `json:"topic" validate:"max=25"`
	Slug     string     `json:"slug" validate:"required,max=250,slug"`
	AuthorID int        `json:"author_id" validate:"required,gt=0"`
	Body     string     `json:"body" validate:"required"`
	Image    string     `json:"image,omitempty" validate:"max=100"`
	Tags     []string   `json:"tags,omitempty" validate:"dive,required,max=50"`
	Publish  time.Time  `json:"publish" validate:"required"`
	Created  time.Time  `json:"created"`
	Updated  time.Time  `json:"updated"`
	Status   Status     `json:"status" validate:"oneof=DF PB"`
	Author   *User      `json:"-" validate:"-"`
	Comments []*Comment `json:"-" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID      int       `json:"id" validate:"gte=0"`
	PostID  int       `json:"post_id" validate:"required,gt=0"`
	Name    string    `json:"name" validate:"required,max=80"`
	Email   string    `json:"email" validate:"required,email,max=254"`
	Body    string    `json:"body" validate:"required"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	Active  bool      `json:"active"`
	Post    *Post     `json:"-" validate:"-"`
}

// User is a post author. Authors are managed from the command line.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,max=150"`
	Email        string    `json:"email,omitempty" validate:"omitempty,email,max=254"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	Created      time.Time `json:"created"`
}
