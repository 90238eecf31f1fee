package sqlite_test

import (
	"path/filepath"
	"testing"

	"mysite/app/models"
	"mysite/app/repositories"
	"mysite/app/repositories/repotest"
	"mysite/app/repositories/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ")
	assert.Error(t, err)
}

func TestStoreContract(t *testing.T) {
	repotest.RunStoreTests(t, func(t *testing.T) repositories.Store {
		return openTempStore(t)
	})
}

func TestReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.db")

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	author := repotest.SeedUser(t, store, "author")
	post := repotest.SeedPost(t, store, author.ID, "Persisted", func(p *models.Post) {
		p.Tags = []string{"a", "b"}
	})
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Posts().GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Slug)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
}

func TestTagMatchIsExact(t *testing.T) {
	store := openTempStore(t)
	author := repotest.SeedUser(t, store, "author")
	repotest.SeedPost(t, store, author.ID, "Golang", func(p *models.Post) {
		p.Tags = []string{"golang"}
	})

	n, err := store.Posts().Count(repositories.PostFilter{Tag: "go"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = store.Posts().Count(repositories.PostFilter{Tag: "golang"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClear(t *testing.T) {
	store := openTempStore(t)
	author := repotest.SeedUser(t, store, "author")
	post := repotest.SeedPost(t, store, author.ID, "Wiped", nil)
	repotest.SeedComment(t, store, post.ID, "Reader", post.Publish)

	require.NoError(t, store.Clear())

	n, err := store.Posts().Count(repositories.PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	// Sequences restart after a clear.
	again := repotest.SeedUser(t, store, "author")
	assert.Equal(t, 1, again.ID)
}
