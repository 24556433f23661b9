package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	return w
}

func next(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestWatcher_ReportsChangedProfile(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t, dir)

	path := filepath.Join(dir, "Work.profile")
	if err := os.WriteFile(path, []byte("[General]\nName=Work\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := next(t, w)
	if ev.Path != path {
		t.Errorf("Path = %q, want %q", ev.Path, path)
	}
	if ev.Op != Changed {
		t.Errorf("Op = %v, want %v", ev.Op, Changed)
	}
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t, dir)

	path := filepath.Join(dir, "Work.profile")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("[General]\nName=Work\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	next(t, w)
	select {
	case ev := <-w.Events():
		t.Errorf("unexpected second event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := newWatcher(t, dir)

	for _, name := range []string{"notes.txt", ".Work.profile.swp", ".hidden.profile"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "Shell.desktop")
	if err := os.WriteFile(path, []byte("[Desktop Entry]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if ev := next(t, w); ev.Path != path {
		t.Errorf("Path = %q, want %q", ev.Path, path)
	}
}

func TestWatcher_ReportsRemoved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Gone.profile")
	if err := os.WriteFile(path, []byte("[General]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w := newWatcher(t, dir)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	ev := next(t, w)
	if ev.Op != Removed {
		t.Errorf("Op = %v, want %v", ev.Op, Removed)
	}
}

func TestWatcher_Watch(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("Watch(missing) error = %v, want nil", err)
	}

	file := filepath.Join(t.TempDir(), "x.profile")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Watch(file) error = %v, want ErrNotDirectory", err)
	}

	dir := t.TempDir()
	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch(dir) error = %v", err)
	}
	if err := w.Watch(dir); err != nil {
		t.Errorf("second Watch(dir) error = %v, want nil", err)
	}
	if got := w.Dirs(); len(got) != 1 {
		t.Errorf("Dirs() = %v, want one entry", got)
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("Events() should be closed")
	}
	if err := w.Watch(t.TempDir()); !errors.Is(err, ErrClosed) {
		t.Errorf("Watch after Close error = %v, want ErrClosed", err)
	}
}

func TestOpString(t *testing.T) {
	if Changed.String() != "changed" || Removed.String() != "removed" {
		t.Errorf("Op strings = %q, %q", Changed, Removed)
	}
}
