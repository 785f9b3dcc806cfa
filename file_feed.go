package rudder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileFeed watches a file and emits its contents on every write.
// Paired with a Pump it turns edits to a file into dispatched actions.
//
// The parent directory is watched rather than the file itself, so atomic
// replaces (editors that write a temp file and rename it over the target)
// keep emitting instead of silently dropping the watch.
type FileFeed struct {
	path string
}

// NewFileFeed creates a FileFeed for the given file path.
// The file must exist when Watch is called.
func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: path}
}

// Watch begins watching the file and returns a channel that emits the file
// contents whenever the file changes. The current contents are emitted
// immediately so the first dispatch happens during Pump.Start.
func (f *FileFeed) Watch(ctx context.Context) (<-chan []byte, error) {
	if _, err := os.Stat(f.path); err != nil {
		return nil, fmt.Errorf("cannot watch file %s: %w", f.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	target, err := filepath.Abs(f.path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve path %s: %w", f.path, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		emit := func() bool {
			data, err := os.ReadFile(f.path)
			if err != nil {
				// Transient during atomic replace; the rename event follows.
				return true
			}
			select {
			case out <- data:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				name, err := filepath.Abs(event.Name)
				if err != nil || name != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if !emit() {
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return out, nil
}
