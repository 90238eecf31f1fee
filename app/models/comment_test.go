package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:      1,
				PostID:  1,
				Name:    "John Doe",
				Email:   "john@example.com",
				Body:    "This is a valid comment",
				Created: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "invalid email",
			comment: &Comment{
				ID:      1,
				PostID:  1,
				Name:    "John Doe",
				Email:   "not-an-email",
				Body:    "This is a valid comment",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty body",
			comment: &Comment{
				ID:      1,
				PostID:  1,
				Name:    "John Doe",
				Email:   "john@example.com",
				Body:    "",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing post",
			comment: &Comment{
				ID:      1,
				Name:    "John Doe",
				Email:   "john@example.com",
				Body:    "Valid content",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:      1,
				PostID:  1,
				Name:    "John Doe",
				Email:   "john@example.com",
				Body:    "Valid content",
				Created: time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{
		ID:     1,
		PostID: 1,
		Name:   "John Doe",
		Body:   "Test Comment",
	}

	assert.True(t, comment.Created.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.Created.IsZero())
	assert.True(t, comment.Active)
	assert.Equal(t, comment.Created, comment.Updated)
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{
		ID:   1,
		Name: "John Doe",
		Body: "Test Comment",
	}

	t.Run("set valid post", func(t *testing.T) {
		post := &Post{
			ID:    1,
			Title: "Test Post",
			Body:  "Test Content",
		}

		err := comment.SetPost(post)
		assert.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, post, comment.Post)
		assert.Equal(t, "Comment by John Doe on Test Post", comment.String())
	})

	t.Run("set nil post", func(t *testing.T) {
		err := comment.SetPost(nil)
		assert.Error(t, err)
	})
}
