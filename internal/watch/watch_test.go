package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/appgen/internal/logging"
)

func startWatcher(t *testing.T, path string, run func(context.Context) error) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := New(path, logging.NewNullLogger(), run).WithDebounce(20 * time.Millisecond)

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	select {
	case <-w.ready:
	case err := <-errCh:
		cancel()
		t.Fatalf("watcher stopped early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("watcher did not start")
	}
	return cancel, errCh
}

func TestWatcher_RunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	var calls atomic.Int32
	cancel, done := startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	var calls atomic.Int32
	cancel, done := startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_KeepsRunningAfterFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	var calls atomic.Int32
	cancel, done := startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return errors.New("compile failed")
	})

	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("c"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "app.yaml"), logging.NewNullLogger(), func(context.Context) error { return nil })
	err := w.Run(context.Background())
	assert.Error(t, err)
}
