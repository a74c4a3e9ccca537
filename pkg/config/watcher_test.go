package config

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestShouldTriggerReload(t *testing.T) {
	const path = "/etc/odq/odq.yaml"

	t.Run("empty name", func(t *testing.T) {
		if shouldTriggerReload(fsnotify.Event{Name: "", Op: fsnotify.Write}, path) {
			t.Fatalf("expected false for empty event name")
		}
	})

	t.Run("unsupported op", func(t *testing.T) {
		if shouldTriggerReload(fsnotify.Event{Name: path, Op: 0}, path) {
			t.Fatalf("expected false for unsupported op")
		}
	})

	t.Run("other file in directory", func(t *testing.T) {
		if shouldTriggerReload(fsnotify.Event{Name: "/etc/odq/other.yaml", Op: fsnotify.Write}, path) {
			t.Fatalf("expected false for unrelated file")
		}
	})

	t.Run("profile write", func(t *testing.T) {
		if !shouldTriggerReload(fsnotify.Event{Name: path, Op: fsnotify.Write}, path) {
			t.Fatalf("expected true for profile write")
		}
	})

	t.Run("rename and replace", func(t *testing.T) {
		if !shouldTriggerReload(fsnotify.Event{Name: path, Op: fsnotify.Rename}, path) {
			t.Fatalf("expected true for rename")
		}
	})
}

func TestWatchDisabled(t *testing.T) {
	p := &Profile{BaseURL: "https://tenant.example.com/_api"}
	closer, err := Watch("odq.yaml", p, func(*Profile) {})
	if err != nil {
		t.Fatalf("Watch err=%v", err)
	}
	if closer != nil {
		t.Fatalf("disabled auto-reload should not start a watcher")
	}
}
