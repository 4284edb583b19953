package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func waitEvent(t *testing.T, w *Watcher, timeout time.Duration) (Event, bool) {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestWatcherCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	for _, s := range []string{"two", "three", "four"} {
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ev, ok := waitEvent(t, w, 2*time.Second)
	if !ok {
		t.Fatal("expected an event")
	}
	abs, _ := filepath.Abs(path)
	if ev.Path != abs {
		t.Errorf("event path = %q, want %q", ev.Path, abs)
	}
	if !ev.Op.Has(OpWrite) {
		t.Errorf("expected write op, got %v", ev.Op)
	}

	if _, ok := waitEvent(t, w, 200*time.Millisecond); ok {
		t.Error("rapid writes should produce a single event")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.md")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ev, ok := waitEvent(t, w, 200*time.Millisecond); ok {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := New(0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if w.delay != DefaultDelay {
		t.Errorf("expected default delay, got %v", w.delay)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if err := w.Add("x.md"); err != ErrWatcherClosed {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("events channel should be closed")
	}
}

func TestConvertOp(t *testing.T) {
	if got := convertOp(fsnotify.Write | fsnotify.Chmod); got != OpWrite {
		t.Errorf("convertOp = %v", got)
	}
	if got := convertOp(fsnotify.Chmod); got != 0 {
		t.Errorf("chmod should be ignored, got %v", got)
	}
	if OpRename.String() != "RENAME" || (OpCreate | OpWrite).Has(OpRemove) {
		t.Error("unexpected Op helpers")
	}
}
