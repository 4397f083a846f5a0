package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	t.Run("Missing File Is An Empty Set", func(t *testing.T) {
		f := New(filepath.Join(t.TempDir(), "nope.checkpoint"))

		ids, err := f.Load()
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Persist Then Load Roundtrip", func(t *testing.T) {
		f := New(filepath.Join(t.TempDir(), "wipe.checkpoint"))

		want := map[string]struct{}{"b": {}, "a": {}, "c": {}}
		require.NoError(t, f.Persist(want))

		got, err := f.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Output Is Sorted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wipe.checkpoint")
		f := New(path)

		require.NoError(t, f.Persist(map[string]struct{}{"b": {}, "a": {}}))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n", string(raw))
	})

	t.Run("Persist Replaces Previous Content", func(t *testing.T) {
		f := New(filepath.Join(t.TempDir(), "wipe.checkpoint"))

		require.NoError(t, f.Persist(map[string]struct{}{"a": {}, "b": {}}))
		require.NoError(t, f.Persist(map[string]struct{}{"c": {}}))

		got, err := f.Load()
		require.NoError(t, err)
		assert.Equal(t, map[string]struct{}{"c": {}}, got)
	})

	t.Run("Blank Lines Are Skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wipe.checkpoint")
		require.NoError(t, os.WriteFile(path, []byte("a\n\n  \nb\n"), 0o644))

		got, err := New(path).Load()
		require.NoError(t, err)
		assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, got)
	})

	t.Run("Remove Is Idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wipe.checkpoint")
		f := New(path)

		require.NoError(t, f.Persist(map[string]struct{}{"a": {}}))
		require.NoError(t, f.Remove())
		assert.NoFileExists(t, path)
		require.NoError(t, f.Remove())
	})
}
