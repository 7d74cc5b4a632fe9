package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gnana997/reactlint/pkg/lint"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const eventTimeout = 5 * time.Second

type recorder struct {
	changed chan string
	removed chan string
	config  chan string
}

func newRecorder() *recorder {
	return &recorder{
		changed: make(chan string, 16),
		removed: make(chan string, 16),
		config:  make(chan string, 16),
	}
}

func (r *recorder) events() Events {
	return Events{
		Changed:       func(p string) { r.changed <- p },
		Removed:       func(p string) { r.removed <- p },
		ConfigChanged: func(p string) { r.config <- p },
	}
}

func startWatcher(t *testing.T, root string, rec *recorder) *Watcher {
	t.Helper()
	w, err := New(root, Options{
		Debounce:    20 * time.Millisecond,
		Discover:    lint.DefaultDiscoverOptions(),
		ConfigFiles: []string{".reactlint.yaml"},
	}, rec.events(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { w.Stop() })
	return w
}

func waitFor(t *testing.T, ch <-chan string, expected string) {
	t.Helper()
	deadline := time.After(eventTimeout)
	for {
		select {
		case got := <-ch:
			if got == expected {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", expected)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	w := startWatcher(t, root, rec)
	assert.True(t, w.GetStats().IsRunning)

	path := filepath.Join(root, "App.jsx")
	require.NoError(t, os.WriteFile(path, []byte("const A = () => <div/>;\n"), 0o644))
	waitFor(t, rec.changed, path)

	require.NoError(t, os.Remove(path))
	waitFor(t, rec.removed, path)

	cfg := filepath.Join(root, ".reactlint.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("rules: {}\n"), 0o644))
	waitFor(t, rec.config, cfg)
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, root, rec)

	dir := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	// Give the watcher a moment to register the new directories.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "Button.tsx")
	require.NoError(t, os.WriteFile(path, []byte("export const Button = () => <button/>;\n"), 0o644))
	waitFor(t, rec.changed, path)
}

func TestWatcherIgnoresUnselectedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "pkg"), 0o755))

	rec := newRecorder()
	w := startWatcher(t, root, rec)
	for _, p := range w.watcher.WatchList() {
		assert.NotContains(t, p, "node_modules")
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "pkg", "index.js"), []byte("x"), 0o644))
	sentinel := filepath.Join(root, "Sentinel.jsx")
	require.NoError(t, os.WriteFile(sentinel, []byte("x"), 0o644))

	// Events arrive in order; the first reported path must be the sentinel.
	select {
	case got := <-rec.changed:
		assert.Equal(t, sentinel, got)
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for sentinel")
	}
}

func TestWatcherDebounces(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()

	w, err := New(root, Options{Debounce: 300 * time.Millisecond}, rec.events(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	path := filepath.Join(root, "App.jsx")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}
	waitFor(t, rec.changed, path)

	select {
	case got := <-rec.changed:
		t.Fatalf("unexpected second event for %s", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherLifecycle(t *testing.T) {
	w, err := New(t.TempDir(), Options{}, Events{}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.Error(t, w.Start())

	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.Error(t, w.Start())
	assert.False(t, w.GetStats().IsRunning)

	_, err = New(t.TempDir(), Options{Discover: lint.DiscoverOptions{Exclude: []string{"[*"}}}, Events{}, nil)
	assert.Error(t, err)

	unstarted, err := New(t.TempDir(), Options{}, Events{}, nil)
	require.NoError(t, err)
	assert.NoError(t, unstarted.Stop())
}
