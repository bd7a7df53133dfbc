// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package filewatcher reloads table documents when files on disk change.
package filewatcher

import (
	"context"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/gridfmt/gridfmt/loader"
	"github.com/gridfmt/gridfmt/logging"
)

// OnReload is invoked after every reload with the freshly loaded documents,
// or the error that prevented loading them.
type OnReload func(ctx context.Context, loaded *loader.Result, elapsed time.Duration, err error)

// FileWatcher watches the directories holding a set of paths.
type FileWatcher struct {
	paths    []string
	filter   loader.Filter
	onReload OnReload
	logger   logging.Logger
	done     chan struct{}
}

// New returns a watcher for paths. Reloads apply filter the same way the
// initial load does.
func New(paths []string, filter loader.Filter, onReload OnReload, logger logging.Logger) *FileWatcher {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &FileWatcher{
		paths:    paths,
		filter:   filter,
		onReload: onReload,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins watching. It returns once the watches are registered; events
// are processed in the background until ctx is done.
func (w *FileWatcher) Start(ctx context.Context) error {
	watcher, err := w.getWatcher(w.paths)
	if err != nil {
		return err
	}
	go w.readWatcher(ctx, watcher)
	return nil
}

// Done is closed once the watcher has stopped after its context ended.
func (w *FileWatcher) Done() <-chan struct{} {
	return w.done
}

func (w *FileWatcher) getWatcher(rootPaths []string) (*fsnotify.Watcher, error) {
	watchPaths, err := getWatchPaths(rootPaths)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, path := range watchPaths {
		w.logger.WithFields(map[string]any{"path": path}).Debug("watching path")
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return watcher, nil
}

func (w *FileWatcher) readWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(w.done)
	defer watcher.Close()

	mask := fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if evt.Op&mask == 0 {
				continue
			}
			w.logger.WithFields(map[string]any{
				"event": evt.String(),
			}).Debug("Registered file event.")
			w.reload(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error: %v", err)
		}
	}
}

func (w *FileWatcher) reload(ctx context.Context) {
	logger := w.logger.WithFields(map[string]any{"reload_id": uuid.NewString()})

	t0 := time.Now()
	loaded, err := loader.Filtered(w.paths, w.filter)
	elapsed := time.Since(t0)

	if err != nil {
		logger.Debug("Reload failed after %v.", elapsed)
	} else {
		logger.WithFields(map[string]any{"files": len(loaded.Files)}).Debug("Reloaded in %v.", elapsed)
	}

	w.onReload(ctx, loaded, elapsed, err)
}

// getWatchPaths returns every directory at or below rootPaths, plus the
// directories holding any root paths that name files.
func getWatchPaths(rootPaths []string) ([]string, error) {
	seen := map[string]struct{}{}
	var files []string

	for _, path := range rootPaths {
		result, err := loader.Paths(path, true)
		if err != nil {
			return nil, err
		}

		for _, p := range result {
			info, err := os.Stat(p)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				seen[p] = struct{}{}
			} else {
				files = append(files, p)
			}
		}
	}

	for _, dir := range loader.Dirs(files) {
		seen[dir] = struct{}{}
	}

	return slices.Sorted(maps.Keys(seen)), nil
}
