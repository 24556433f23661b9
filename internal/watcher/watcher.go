// Package watcher reports edits to profile files on disk.
//
// A Watcher watches the profile directories (not recursively) and emits one
// Event per profile file after a quiet period, so an editor's
// write-rename-chmod burst becomes a single reload. Events are delivered on
// a channel and are meant to be consumed by the goroutine that owns the
// manager.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/firefly-engineering/profilectl/internal/logging"
)

var (
	// ErrClosed is returned when watching through a closed Watcher.
	ErrClosed = errors.New("watcher closed")
	// ErrNotDirectory is returned by Watch for anything but a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// Op is what happened to a profile file.
type Op int

const (
	// Changed covers creation, writes and renames into place.
	Changed Op = iota
	// Removed means the file no longer exists.
	Removed
)

func (o Op) String() string {
	if o == Removed {
		return "removed"
	}
	return "changed"
}

// Event reports a profile file that needs reloading.
type Event struct {
	Path string
	Op   Op
}

// DefaultDebounce is the quiet period before an event is emitted.
const DefaultDebounce = 200 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithExtensions sets which file suffixes are reported.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.extensions = exts
	}
}

// Watcher turns fsnotify events into profile reload events.
type Watcher struct {
	fsw        *fsnotify.Watcher
	debounce   time.Duration
	extensions []string

	events chan Event
	errors chan error

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New starts a watcher with no directories.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:        fsw,
		debounce:   DefaultDebounce,
		extensions: []string{".profile", ".desktop"},
		events:     make(chan Event, 64),
		errors:     make(chan error, 8),
		closeCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Watch adds a directory. Missing directories are skipped with a debug log
// since most search path entries do not exist.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("profile directory does not exist, not watching", "dir", abs)
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	if slices.Contains(w.fsw.WatchList(), abs) {
		return nil
	}
	return w.fsw.Add(abs)
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string {
	dirs := w.fsw.WatchList()
	slices.Sort(dirs)
	return dirs
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Pending events are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return err
}

func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return slices.Contains(w.extensions, filepath.Ext(base))
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-w.closeCh:
			timer.Stop()
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				logging.Warn("dropping watcher error", "error", err)
			}

		case <-timer.C:
			for _, path := range sortedKeys(pending) {
				if !w.send(classify(path)) {
					return
				}
			}
			clear(pending)
		}
	}
}

func (w *Watcher) send(ev Event) bool {
	select {
	case w.events <- ev:
		return true
	case <-w.closeCh:
		return false
	}
}

// classify looks at the file after the burst settled, so a rename over an
// existing profile reports Changed rather than Removed.
func classify(path string) Event {
	if _, err := os.Stat(path); err != nil {
		return Event{Path: path, Op: Removed}
	}
	return Event{Path: path, Op: Changed}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
