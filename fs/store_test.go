package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/threadex"
	"github.com/fwojciec/threadex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes file into output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewStore(dir)

		err := store.Save(context.Background(), "0001_First.md", "# First\n")

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(dir, "0001_First.md"))
		require.NoError(t, err)
		assert.Equal(t, "# First\n", string(content))
	})

	t.Run("creates missing output directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "exports", "perplexity")
		store := fs.NewStore(dir)

		err := store.Save(context.Background(), "_index.md", "index")

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "_index.md"))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewStore(dir)
		require.NoError(t, store.Save(context.Background(), "a.md", "old"))

		err := store.Save(context.Background(), "a.md", "new")

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(dir, "a.md"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewStore(dir)

		require.NoError(t, store.Save(context.Background(), "a.md", "content"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.md", entries[0].Name())
	})

	t.Run("rejects filenames that escape the directory", func(t *testing.T) {
		t.Parallel()

		store := fs.NewStore(t.TempDir())

		for _, name := range []string{"", "..", "../evil.md", "sub/file.md", `sub\file.md`} {
			err := store.Save(context.Background(), name, "x")
			assert.Equal(t, threadex.EINVALID, threadex.ErrorCode(err), name)
		}
	})

	t.Run("accepts titles with an ellipsis", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewStore(dir)
		name := threadex.BulkFilename(1, "Wait... why does this happen?")

		err := store.Save(context.Background(), name, "x")

		require.NoError(t, err)
		assert.Equal(t, "0001_Wait..._why_does_this_happen.md", name)
		assert.FileExists(t, filepath.Join(dir, name))
	})

	t.Run("saves names close to the filesystem limit", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewStore(dir)
		name := threadex.SingleFilename(strings.Repeat("日", 80))
		require.Len(t, name, 243)

		err := store.Save(context.Background(), name, "x")

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, name))
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewStore(dir)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.Save(ctx, "a.md", "content")

		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, filepath.Join(dir, "a.md"))
	})
}

func TestStore_Path(t *testing.T) {
	t.Parallel()

	store := fs.NewStore("/tmp/out")

	assert.Equal(t, "/tmp/out", store.Dir())
	assert.Equal(t, filepath.Join("/tmp/out", "_index.md"), store.Path("_index.md"))
}
