package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"mysite/app/repositories"

	"github.com/spf13/cobra"
)

func (c *cli) newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the content store",
		Long: `Manage the content store.

Subcommands:
  init     - Create an empty database
  clean    - Delete every post, comment and user
  backup   - Write a backup file (badger only)
  restore  - Replace the content with a backup (badger only)`,
	}
	cmd.AddCommand(c.newDBInitCmd(), c.newDBCleanCmd(), c.newDBBackupCmd(), c.newDBRestoreCmd())
	return cmd
}

func (c *cli) newDBInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := storePath(c.cfg)
			if exists(path) {
				fmt.Fprintln(cmd.OutOrStdout(), "Database already exists. Use 'db clean' first if you want to reinitialize.")
				return nil
			}
			if err := c.withStore(func(clearable) error { return nil }); err != nil {
				return fmt.Errorf("initialize database: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database initialized at %s\n", path)
			return nil
		},
	}
}

func (c *cli) newDBCleanCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete all content from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !exists(storePath(c.cfg)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is already clean (does not exist)")
				return nil
			}
			if !yes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
				return nil
			}
			if err := c.withStore(func(store clearable) error { return store.Clear() }); err != nil {
				return fmt.Errorf("clean database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (c *cli) newDBBackupCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Long: `Create a backup of the database.

Examples:
  mysite db backup                     # Write backups/backup_<unix time>.db
  mysite db backup -o blog.bak         # Write to a chosen file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !exists(storePath(c.cfg)) {
				return fmt.Errorf("no database exists to back up")
			}
			return c.withBadger(func(store *repositories.BadgerStore) error {
				path := output
				if path == "" {
					path = filepath.Join(c.cfg.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("create backup directory: %w", err)
				}
				if err := writeBackup(store, path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Backup file (default: a timestamped file in MYSITE_BACKUP_DIR)")
	return cmd
}

// backuper is the part of the badger store writeBackup needs.
type backuper interface {
	Backup(w io.Writer) error
}

// writeBackup writes a backup to path. A failed backup leaves no file behind.
func writeBackup(store backuper, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close backup file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return store.Backup(f)
}

func (c *cli) newDBRestoreCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backupFile := args[0]
			fi, err := os.Stat(backupFile)
			if err != nil {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			if exists(storePath(c.cfg)) && !yes &&
				!confirm(cmd, "Existing database found. Do you want to replace it?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
				return nil
			}

			return c.withBadger(func(store *repositories.BadgerStore) error {
				f, err := os.Open(backupFile)
				if err != nil {
					return fmt.Errorf("open backup file: %w", err)
				}
				defer f.Close()

				if err := store.Clear(); err != nil {
					return fmt.Errorf("remove existing data: %w", err)
				}
				if err := store.Restore(f); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Database restored successfully")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
