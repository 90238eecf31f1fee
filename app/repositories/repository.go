package repositories

import (
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is the Badger-backed Store.
type BadgerStore struct {
	db       *badger.DB
	posts    *BadgerPostRepository
	comments *BadgerCommentRepository
	users    *BadgerUserRepository
}

// OpenBadger opens or creates the database at path. An empty path opens an
// in-memory database, which is what tests use.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{
		db:       db,
		posts:    NewBadgerPostRepository(db),
		comments: NewBadgerCommentRepository(db),
		users:    NewBadgerUserRepository(db),
	}
}

func (s *BadgerStore) Posts() PostRepository       { return s.posts }
func (s *BadgerStore) Comments() CommentRepository { return s.comments }
func (s *BadgerStore) Users() UserRepository       { return s.users }

// DB exposes the underlying handle.
func (s *BadgerStore) DB() *badger.DB { return s.db }

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Backup writes a full backup of the database to w.
func (s *BadgerStore) Backup(w io.Writer) error {
	if _, err := s.db.Backup(w, 0); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (s *BadgerStore) Restore(r io.Reader) error {
	if err := s.db.Load(r, 4); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// Clear drops every key.
func (s *BadgerStore) Clear() error {
	return s.db.DropAll()
}
