package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mysite/app/config"
	"mysite/app/repositories"
	"mysite/app/repositories/sqlite"
)

var errBadgerOnly = errors.New("backup and restore need the badger store")

// clearable stores can drop all content in place.
type clearable interface {
	repositories.Store
	Clear() error
}

// openStore opens the backend named by cfg, creating its files as needed.
func openStore(cfg config.Config) (clearable, error) {
	switch cfg.StoreDriver {
	case config.DriverBadger:
		if err := os.MkdirAll(cfg.BadgerPath, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		store, err := repositories.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", repositories.ErrUnknownBackend, cfg.StoreDriver)
}

// storePath is where cfg's backend keeps its data.
func storePath(cfg config.Config) string {
	if cfg.StoreDriver == config.DriverSQLite {
		return cfg.SQLitePath
	}
	return cfg.BadgerPath
}

// withStore opens the configured store for the duration of fn.
func (c *cli) withStore(fn func(store clearable) error) error {
	store, err := openStore(c.cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// withBadger is withStore for commands only the badger backend supports.
func (c *cli) withBadger(fn func(store *repositories.BadgerStore) error) error {
	if c.cfg.StoreDriver != config.DriverBadger {
		return errBadgerOnly
	}
	return c.withStore(func(store clearable) error {
		return fn(store.(*repositories.BadgerStore))
	})
}
