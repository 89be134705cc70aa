package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

type calls struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *calls) handle(_ context.Context, changed []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, changed)
	return nil
}

func (c *calls) snapshot() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.batches...)
}

func startWatcher(t *testing.T, files []string, h Handler) {
	t.Helper()
	w, err := New(files, 100*time.Millisecond, h)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	navFile := filepath.Join(dir, "nav.yaml")
	require.NoError(t, os.WriteFile(navFile, []byte("[]\n"), 0o600))

	var c calls
	startWatcher(t, []string{navFile}, c.handle)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(navFile, []byte("- text: A\n  link: /a\n"), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(c.snapshot()) == 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	batches := c.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{navFile}, batches[0])
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	navFile := filepath.Join(dir, "nav.yaml")
	require.NoError(t, os.WriteFile(navFile, []byte("[]\n"), 0o600))

	var c calls
	startWatcher(t, []string{navFile}, c.handle)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	time.Sleep(400 * time.Millisecond)
	assert.Empty(t, c.snapshot())
}

func TestWatcherHandlesRenameSave(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "docnav.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("version: \"1.0\"\n"), 0o600))

	var c calls
	startWatcher(t, []string{cfgFile}, c.handle)

	tmp := filepath.Join(dir, ".docnav.yaml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("version: \"1.0\"\n# edited\n"), 0o600))
	require.NoError(t, os.Rename(tmp, cfgFile))

	require.Eventually(t, func() bool { return len(c.snapshot()) >= 1 }, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{cfgFile}, c.snapshot()[0])
}

func TestNewValidation(t *testing.T) {
	noop := func(context.Context, []string) error { return nil }

	_, err := New(nil, time.Second, noop)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = New([]string{"a"}, 0, noop)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = New([]string{"a"}, time.Second, nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = New([]string{filepath.Join(t.TempDir(), "missing-dir", "nav.yaml")}, time.Second, noop)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestFilesSorted(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{filepath.Join(dir, "b.yaml"), filepath.Join(dir, "a.yaml")}, time.Second, func(context.Context, []string) error { return nil })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })
	assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")}, w.Files())
}
