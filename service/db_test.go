package service

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackup struct {
	data string
	err  error
}

func (f fakeBackup) Backup(w io.Writer) error {
	if _, err := io.WriteString(w, f.data); err != nil {
		return err
	}
	return f.err
}

func TestWriteBackup(t *testing.T) {
	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		path := filepath.Join(dir, "ok.bak")
		require.NoError(t, writeBackup(fakeBackup{data: "payload"}, path))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(got))
	})

	t.Run("failed backup removes the partial file", func(t *testing.T) {
		path := filepath.Join(dir, "partial.bak")
		err := writeBackup(fakeBackup{data: "half", err: errors.New("disk full")}, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.NoFileExists(t, path)
	})

	t.Run("unwritable path", func(t *testing.T) {
		err := writeBackup(fakeBackup{}, filepath.Join(dir, "missing", "x.bak"))
		assert.ErrorContains(t, err, "create backup file")
	})
}
