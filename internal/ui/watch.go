package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"luminol/internal/logging"
)

var watchLog = logging.ForComponent(logging.CompWatcher)

type fileKind int

const (
	fileDocument fileKind = iota
	fileConfig
)

func (k fileKind) String() string {
	if k == fileConfig {
		return "config"
	}
	return "document"
}

// Watcher reports writes to the open document and the config file.
// Parent directories are watched so editors that replace files by rename
// are still seen.
type Watcher struct {
	fs    *fsnotify.Watcher
	mu    sync.Mutex
	files map[string]fileKind
	dirs  map[string]bool
	msgs  chan tea.Msg
	done  chan struct{}
	once  sync.Once
}

// NewWatcher starts an fsnotify watcher
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		fs:    fsw,
		files: make(map[string]fileKind),
		dirs:  make(map[string]bool),
		msgs:  make(chan tea.Msg, 16),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// WatchDocument reloads the document when path changes
func (w *Watcher) WatchDocument(path string) error {
	return w.Watch(path, fileDocument)
}

// WatchConfig reloads settings when path changes
func (w *Watcher) WatchConfig(path string) error {
	return w.Watch(path, fileConfig)
}

// Watch adds path to the watched set
func (w *Watcher) Watch(path string, kind fileKind) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = kind
	watchLog.Debug("watching", slog.String("path", abs), slog.String("kind", kind.String()))
	return nil
}

func (w *Watcher) lookup(name string) (string, fileKind, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", 0, false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	kind, ok := w.files[abs]
	return abs, kind, ok
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path, kind, ok := w.lookup(event.Name)
			if !ok {
				continue
			}
			w.send(fileChangedMsg{path: path, kind: kind, op: event.Op})
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			watchLog.Warn("watch_error", slog.String("error", err.Error()))
			w.send(watchErrMsg{err: err})
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) send(msg tea.Msg) {
	select {
	case w.msgs <- msg:
	case <-w.done:
	}
}

// Wait returns a command that delivers the next watcher message
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.msgs:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
