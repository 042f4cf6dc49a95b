package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan []string, 10)

	w, err := New([]string{dir}, func(paths []string) {
		changes <- paths
	}, Options{
		Debounce: 20 * time.Millisecond,
		Filter:   func(path string) bool { return strings.HasSuffix(path, ".c") },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	target := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("int a;\n"), 0o644))

	select {
	case paths := <-changes:
		assert.Equal(t, []string{target}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_FileRoot(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(target, []byte("int a;\n"), 0o644))

	w, err := New([]string{target}, func([]string) {}, Options{})
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.True(t, w.files[target])
	assert.False(t, w.inDir(filepath.Join(dir, "other.c")))
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, func([]string) {}, Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
