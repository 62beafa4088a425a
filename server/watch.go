package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch reloads the graph when the source file changes on disk. The
// parent directory is watched rather than the file itself: editors and
// atomic writers replace the file via rename, which would otherwise
// drop the watch.
func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: create watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(s.cfg.SourcePath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("server: watch %s: %w", filepath.Dir(absPath), err)
	}

	s.logger.Info("watching source file", "path", absPath)

	// Debounce: editors fire several events per save, and an atomic
	// rename-replace arrives as remove+create. Coalesce into one reload.
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evPath, err := filepath.Abs(event.Name)
			if err != nil || evPath != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.cfg.DebounceDelay)
				timerCh = timer.C
			} else {
				timer.Reset(s.cfg.DebounceDelay)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := s.Reload(); err != nil {
				// Keep serving the previous graph.
				s.logger.Error("reload failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", "error", err)
		}
	}
}
