// Package watch reloads controller settings from disk while the simulation
// runs.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/controller"
	"github.com/Faultbox/hopper/internal/logger"
)

// DefaultDebounce is how long the file must stay quiet before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Queue receives reloaded settings. The sim applies them at the start of its
// next tick.
type Queue interface {
	QueueSettings(controller.Settings)
}

// Watcher reloads a settings file whenever it changes.
type Watcher struct {
	path     string
	queue    Queue
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      *zap.Logger

	// Errors reports files that failed to load and watcher failures. It is
	// closed by Close. Errors are dropped when nobody is reading.
	Errors chan error

	closeCh chan struct{}
	done    sync.WaitGroup
	once    sync.Once
}

// NewWatcher starts watching path. The parent directory is watched so
// editors that replace the file on save are still seen.
func NewWatcher(path string, q Queue, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		queue:    q,
		debounce: debounce,
		watcher:  fw,
		log:      logger.Named("watch"),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	w.done.Add(1)
	go w.run()
	return w, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.done.Wait()
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.done.Done()

	var reload <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			reload = time.After(w.debounce)
		case <-reload:
			reload = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	s, err := controller.LoadSettingsFile(w.path)
	if err != nil {
		w.log.Warn("settings reload failed", zap.Error(err))
		w.report(err)
		return
	}
	w.queue.QueueSettings(s)
	w.log.Info("settings reloaded", zap.String("path", w.path))
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
