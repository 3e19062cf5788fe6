package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, func(context.Context) error { return nil }, nil)
	assert.Error(t, err)

	_, err = New(Config{Path: "x"}, nil, nil)
	assert.Error(t, err)
}

func TestWatcher_RunsOnStartAndOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.txt")
	require.NoError(t, os.WriteFile(path, []byte("::1\n"), 0o644))

	var calls atomic.Int32
	w, err := New(Config{Path: path, Debounce: 20 * time.Millisecond}, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("::1\n::2\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, int(calls.Load()), w.Runs())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var calls atomic.Int32
	w, err := New(Config{Path: path, Debounce: 10 * time.Millisecond}, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_JobErrorDoesNotStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var calls atomic.Int32
	w, err := New(Config{Path: path, Debounce: 10 * time.Millisecond}, func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("a@b.co\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New(Config{Path: filepath.Join(t.TempDir(), "nope", "file.txt")},
		func(context.Context) error { return nil }, nil)
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.Error(t, err)
}

func TestWatcher_RunsDoNotOverlap(t *testing.T) {
	var active, maxActive atomic.Int32
	w, err := New(Config{Path: filepath.Join(t.TempDir(), "candidates.txt")}, func(context.Context) error {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		active.Add(-1)
		return nil
	}, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.runJob(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load())
	assert.Equal(t, 4, w.Runs())
}
