package repositories

import (
	"fmt"
	"time"

	"mysite/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Enforce slug uniqueness for the publish date
		idx := slugIndexKey(post.PublishDate(), post.Slug)
		if _, err := txn.Get(idx); err == nil {
			return ErrSlugTaken
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		// Get next ID
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		// Marshal post
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		// Save post and its slug index
		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}
		return txn.Set(idx, []byte(fmt.Sprint(post.ID)))
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves the post published on the given date with the given slug
func (r *BadgerPostRepository) GetBySlug(publishDate time.Time, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slugIndexKey(publishDate, slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		id, err := readID(item)
		if err != nil {
			return fmt.Errorf("failed to read slug index: %w", err)
		}
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves the posts matching filter, newest first
func (r *BadgerPostRepository) List(filter PostFilter, limit, offset int) ([]*models.Post, error) {
	posts, err := r.scan(filter)
	if err != nil {
		return nil, err
	}
	SortPosts(posts)
	return Window(posts, limit, offset), nil
}

// Count returns the number of posts matching filter
func (r *BadgerPostRepository) Count(filter PostFilter) (int, error) {
	posts, err := r.scan(filter)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (r *BadgerPostRepository) scan(filter PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			if filter.Match(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Verify post exists
		var existing models.Post
		if err := getEntity(txn, postKey(post.ID), &existing); err != nil {
			return err
		}

		oldIdx := slugIndexKey(existing.PublishDate(), existing.Slug)
		newIdx := slugIndexKey(post.PublishDate(), post.Slug)
		if string(oldIdx) != string(newIdx) {
			if _, err := txn.Get(newIdx); err == nil {
				return ErrSlugTaken
			} else if err != badger.ErrKeyNotFound {
				return err
			}
			if err := txn.Delete(oldIdx); err != nil {
				return err
			}
			if err := txn.Set(newIdx, []byte(fmt.Sprint(post.ID))); err != nil {
				return err
			}
		}

		// Marshal and save updated post
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// Delete deletes a post by ID together with its comments
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Verify post exists
		var existing models.Post
		if err := getEntity(txn, postKey(id), &existing); err != nil {
			return err
		}

		// Cascade to comments
		var commentKeys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = commentPostPrefix(id)
		it := txn.NewIterator(opts)
		for it.Rewind(); it.Valid(); it.Next() {
			commentKeys = append(commentKeys, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, key := range commentKeys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		if err := txn.Delete(slugIndexKey(existing.PublishDate(), existing.Slug)); err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}
