package sidecar

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchBinary watches the located server binary and calls onChange when it
// is rewritten on disk. Useful in the development layout where the server
// is rebuilt in place: the running child keeps serving the old build, so
// the shell logs a reminder that a restart is needed. This is deliberately
// log-only; the shell never restarts the server on its own.
func WatchBinary(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: rebuilds typically replace the file, and a
	// watch on the old inode would go stale.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return err
	}

	base := filepath.Base(path)

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					if onChange != nil {
						onChange()
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("binary watch: %v", err)
			}
		}
	}()

	return nil
}
