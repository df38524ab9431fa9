//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/relgen/internal/domain/entities"
)

func canonicalTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	t.Run("should resolve a relative path against the base directory", func(t *testing.T) {
		t.Parallel()

		// given
		base := canonicalTempDir(t)
		require.NoError(t, os.Mkdir(filepath.Join(base, "website"), 0o755))

		// when
		resolved, err := entities.ResolvePath("website", base)

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "website"), resolved.String())
	})

	t.Run("should keep components that do not exist yet", func(t *testing.T) {
		t.Parallel()

		// given
		base := canonicalTempDir(t)

		// when
		resolved, err := entities.ResolvePath("missing/deeper", base)

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "missing", "deeper"), resolved.String())
	})

	t.Run("should follow symlinks in the existing prefix", func(t *testing.T) {
		t.Parallel()

		// given
		base := canonicalTempDir(t)
		target := filepath.Join(base, "real")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.Symlink(target, filepath.Join(base, "link")))

		// when
		resolved, err := entities.ResolvePath(filepath.Join(base, "link", "notes"), "")

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(target, "notes"), resolved.String())
	})

	t.Run("should remove dot segments", func(t *testing.T) {
		t.Parallel()

		// given
		base := canonicalTempDir(t)
		require.NoError(t, os.Mkdir(filepath.Join(base, "a"), 0o755))

		// when
		resolved, err := entities.ResolvePath("./a/../b/./c", base)

		// then
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "b", "c"), resolved.String())
	})

	t.Run("should ignore the base directory for absolute paths", func(t *testing.T) {
		t.Parallel()

		// given
		base := canonicalTempDir(t)

		// when
		resolved, err := entities.ResolvePath(base, "")

		// then
		require.NoError(t, err)
		assert.Equal(t, base, resolved.String())
	})

	t.Run("should be idempotent", func(t *testing.T) {
		t.Parallel()

		// given
		base := t.TempDir()
		first, err := entities.ResolvePath("x/y", base)
		require.NoError(t, err)

		// when
		second, err := entities.ResolvePath(first.String(), "")

		// then
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("should fail on a relative path without base directory", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.ResolvePath("website", "")

		// then
		require.ErrorIs(t, err, entities.ErrMissingBaseDir)
	})

	t.Run("should join elements onto the resolved path", func(t *testing.T) {
		t.Parallel()

		// given
		base := canonicalTempDir(t)
		resolved, err := entities.ResolvePath(base, "")
		require.NoError(t, err)

		// when
		joined := resolved.Join("0.10", "1234.md")

		// then
		assert.Equal(t, filepath.Join(base, "0.10", "1234.md"), joined)
	})
}
