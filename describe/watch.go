package describe

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultSettleDelay = 100 * time.Millisecond

// ReportFunc receives the descriptions of a file that changed on disk.
type ReportFunc func(filePath string, descs []Description, err error)

// Watcher re-describes scenario files whenever they are written.
type Watcher struct {
	engine  DescribeEngine
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	// settle is the quiet period after the last event on a path before the
	// path is described again.
	settle time.Duration
}

func NewWatcher(logger *zap.Logger, engine DescribeEngine) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	return &Watcher{
		engine:  engine,
		logger:  logger,
		watcher: fw,
		settle:  defaultSettleDelay,
	}, nil
}

// Add watches path. Directories are watched recursively.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

// Watch handles file events until ctx is done or the watcher is closed.
// Events on the same path are coalesced: the path is described once its
// events have been quiet for the settle period.
func (w *Watcher) Watch(ctx context.Context, report ReportFunc) error {
	pending := make(map[string]*time.Timer)
	due := make(chan string)
	stop := make(chan struct{})
	defer func() {
		close(stop)
		for _, timer := range pending {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.schedule(event, pending, due, stop)
		case name := <-due:
			delete(pending, name)
			w.describeFile(name, report)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Error("Watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// schedule (re)starts the settle timer of the path named by event.
func (w *Watcher) schedule(event fsnotify.Event, pending map[string]*time.Timer, due chan<- string, stop <-chan struct{}) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !hasDesiredExtension(event.Name) {
		return
	}
	if timer, ok := pending[event.Name]; ok {
		timer.Reset(w.settle)
		return
	}

	name := event.Name
	pending[name] = time.AfterFunc(w.settle, func() {
		select {
		case due <- name:
		case <-stop:
		}
	})
}

func (w *Watcher) describeFile(name string, report ReportFunc) {
	descs, err := w.engine.Run(name)
	if err != nil && w.logger != nil {
		w.logger.Error("Error processing file", zap.String("file", name), zap.Error(err))
	}
	report(name, descs, err)
}
