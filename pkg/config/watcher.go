package config

import (
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Watch reloads the profile at path whenever the file changes and hands
// the fresh profile to apply. Events are debounced by the profile's
// auto_reload.debounce_ms so editors that write in several steps trigger a
// single reload. The returned closer stops the watcher.
//
// Reload failures are logged and skipped; the previously applied profile
// stays in effect.
func Watch(path string, current *Profile, apply func(*Profile)) (io.Closer, error) {
	if current == nil || !current.AutoReload.Enabled {
		return nil, nil
	}
	debounce := time.Duration(current.AutoReload.DebounceMs) * time.Millisecond

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: rename-and-replace writers drop
	// the inode a file watch is bound to.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	triggerCh := make(chan struct{}, 1)

	go func() {
		defer close(doneCh)
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		resetTimer := func() {
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			timerC = timer.C
		}
		runReload := func() {
			p, err := Load(path)
			if err != nil {
				log.Printf("profile auto-reload failed: path=%q err=%v", path, err)
				return
			}
			apply(p)
			log.Printf("profile auto-reload ok: path=%q base_url=%q", path, p.BaseURL)
		}

		for {
			select {
			case <-stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				runReload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("profile auto-reload watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if shouldTriggerReload(evt, path) {
					select {
					case triggerCh <- struct{}{}:
					default:
					}
				}
			case <-triggerCh:
				resetTimer()
			}
		}
	}()

	log.Printf("profile auto-reload enabled: path=%q debounce_ms=%d", path, current.AutoReload.DebounceMs)
	return closerFunc(func() error {
		close(stopCh)
		_ = watcher.Close()
		<-doneCh
		return nil
	}), nil
}

func shouldTriggerReload(evt fsnotify.Event, path string) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) == 0 {
		return false
	}
	return filepath.Base(evt.Name) == filepath.Base(path)
}
