package repositories

import (
	"fmt"

	"mysite/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Comments must belong to an existing post
		if _, err := txn.Get(postKey(comment.PostID)); err == badger.ErrKeyNotFound {
			return fmt.Errorf("post %d: %w", comment.PostID, ErrNotFound)
		} else if err != nil {
			return err
		}

		// Get next ID
		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		// Marshal comment
		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		// Save comment with post ID in key for efficient listing
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var found *models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		key, comment, err := findComment(txn, id)
		if err != nil {
			return err
		}
		if key == nil {
			return ErrNotFound
		}
		found = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByPost retrieves the comments of a post, oldest first
func (r *BadgerCommentRepository) ListByPost(postID int, activeOnly bool) ([]*models.Comment, error) {
	filter := CommentFilter{}
	if activeOnly {
		active := true
		filter.Active = &active
	}
	return r.scan(commentPostPrefix(postID), filter)
}

// List retrieves the comments matching filter, oldest first
func (r *BadgerCommentRepository) List(filter CommentFilter) ([]*models.Comment, error) {
	prefix := []byte(CommentKeyPrefix)
	if filter.PostID != 0 {
		prefix = commentPostPrefix(filter.PostID)
	}
	return r.scan(prefix, filter)
}

func (r *BadgerCommentRepository) scan(prefix []byte, filter CommentFilter) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			if filter.Match(&comment) {
				comments = append(comments, &comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortComments(comments)
	return comments, nil
}

// Update updates an existing comment
func (r *BadgerCommentRepository) Update(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, existing, err := findComment(txn, comment.ID)
		if err != nil {
			return err
		}
		if key == nil {
			return ErrNotFound
		}

		// A comment never moves between posts
		comment.PostID = existing.PostID

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := findComment(txn, id)
		if err != nil {
			return err
		}
		if key == nil {
			return ErrNotFound
		}
		return txn.Delete(key)
	})
}

// findComment scans for the comment's key. A nil key means no match.
func findComment(txn *badger.Txn, id int) ([]byte, *models.Comment, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(CommentKeyPrefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		var comment models.Comment
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal comment: %w", err)
		}
		if comment.ID == id {
			return item.KeyCopy(nil), &comment, nil
		}
	}
	return nil, nil, nil
}
