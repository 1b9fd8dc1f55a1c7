// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/faq-engine/internal/knowledge"
)

// reloadOps are the events on the watched file that trigger a reload.
// Editors that save by rename surface as Create on the target name.
const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watch reloads the knowledge file at path whenever it changes, until ctx
// is cancelled. The parent directory is watched so atomic rename-saves are
// seen. A reload that fails to parse or index is reported to w and the
// previous snapshot keeps serving. The ready channel, if non-nil, is closed
// once the watch is registered.
func (e *Engine) Watch(ctx context.Context, path string, w io.Writer, ready chan<- struct{}) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&reloadOps == 0 {
				continue
			}
			e.reload(abs, path, w)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "warning: watching %s: %v\n", path, err)
		}
	}
}

func (e *Engine) reload(abs, name string, w io.Writer) {
	entries, err := knowledge.LoadFile(abs)
	if err != nil {
		fmt.Fprintf(w, "warning: reload failed, keeping previous knowledge base: %v\n", err)
		return
	}
	if err := e.Load(entries, name); err != nil {
		fmt.Fprintf(w, "warning: reload failed, keeping previous knowledge base: %v\n", err)
		return
	}
	fmt.Fprintf(w, "reloaded %s (%d entries)\n", name, len(entries))
}
