package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher) (string, bool) {
	t.Helper()
	select {
	case name, ok := <-w.Events:
		return name, ok
	case <-time.After(3 * time.Second):
		return "", false
	}
}

func TestWatcherReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{cfg, other} {
		if err := os.WriteFile(p, []byte("a: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New(10*time.Millisecond, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg, []byte("a: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	name, ok := waitEvent(t, w)
	if !ok {
		t.Fatal("no event for the watched file")
	}
	want, _ := filepath.Abs(cfg)
	if name != want {
		t.Errorf("event for %s, want %s", name, want)
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	dir := t.TempDir()
	w, err := New(0, filepath.Join(dir, "scene.yaml"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events still open after Close")
	}
	if _, ok := <-w.Errors; ok {
		t.Error("Errors still open after Close")
	}
	// Closing twice is safe.
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	if _, err := New(0, filepath.Join(t.TempDir(), "nope", "config.yaml")); err == nil {
		t.Error("New() error = nil for a missing directory")
	}
}
