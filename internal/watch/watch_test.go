package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_HandlesNewExport(t *testing.T) {
	inbox := t.TempDir()
	handled := make(chan string, 1)

	w := New(inbox, func(path string) { handled <- path }, nil)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(inbox, "export.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-handled:
		if got != path {
			t.Errorf("handled %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("handler not called for new export")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	inbox := t.TempDir()
	handled := make(chan string, 1)

	w := New(inbox, func(path string) { handled <- path }, nil)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-handled:
		t.Errorf("handler called for non-export file %q", got)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_DebouncesRepeatedWrites(t *testing.T) {
	inbox := t.TempDir()
	handled := make(chan string, 8)

	w := New(inbox, func(path string) { handled <- path }, nil)
	w.debounce = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(inbox, "export.json")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	if got := len(handled); got != 1 {
		t.Errorf("handler called %d times, want 1", got)
	}
}

func TestIsExport(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"a/export.json", true},
		{"a/export.json.zst", true},
		{"a/EXPORT.JSON", true},
		{"a/readme.md", false},
		{"a/export", false},
	}
	for _, c := range cases {
		if got := isExport(c.path); got != c.want {
			t.Errorf("isExport(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(string) {}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Run(ctx); err == nil {
		t.Fatal("expected error for missing inbox dir")
	}
}
