package events

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const fileWatchDebounce = 150 * time.Millisecond

// SizeReader reads the configured width and height from a settings file.
type SizeReader func(path string) (width int, height int, err error)

// FileWatchSource emits a Resize whenever the size stored in a settings file
// changes. It watches the parent directory so editors that replace the file
// by rename are still seen. Zero dimensions in the file produce Resize(0, 0).
type FileWatchSource struct {
	Path   string
	Read   SizeReader
	Logger logger

	ch      chan Event
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once

	lastW, lastH int
}

func NewFileWatchSource(path string, read SizeReader, l logger) *FileWatchSource {
	return &FileWatchSource{Path: filepath.Clean(path), Read: read, Logger: l, ch: make(chan Event, 1)}
}

func (f *FileWatchSource) Events() <-chan Event { return f.ch }

func (f *FileWatchSource) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(f.Path)); err != nil {
		_ = watcher.Close()
		return err
	}
	f.watcher = watcher
	f.stopCh = make(chan struct{})
	f.doneCh = make(chan struct{})
	f.lastW, f.lastH, _ = f.Read(f.Path)

	go f.run(ctx)
	return nil
}

func (f *FileWatchSource) Stop() error {
	if f.watcher == nil {
		return nil
	}
	var err error
	f.once.Do(func() {
		close(f.stopCh)
		<-f.doneCh
		err = f.watcher.Close()
	})
	return err
}

func (f *FileWatchSource) run(ctx context.Context) {
	defer close(f.doneCh)

	// Editors often write in bursts; reload once things settle.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stopCh:
			return
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != f.Path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			pending = time.After(fileWatchDebounce)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			if f.Logger != nil {
				f.Logger.Errorf("watch", "settings watch error: %v", err)
			}
		case <-pending:
			pending = nil
			f.reload(ctx)
		}
	}
}

func (f *FileWatchSource) reload(ctx context.Context) {
	w, h, err := f.Read(f.Path)
	if err != nil {
		if f.Logger != nil {
			f.Logger.Errorf("watch", "reload %s failed: %v", f.Path, err)
		}
		return
	}
	if w == f.lastW && h == f.lastH {
		return
	}
	f.lastW, f.lastH = w, h
	if f.Logger != nil {
		f.Logger.Infof("watch", "%s changed size to %dx%d", f.Path, w, h)
	}
	select {
	case f.ch <- Event{Kind: Resize, Width: w, Height: h}:
	case <-ctx.Done():
	case <-f.stopCh:
	}
}
