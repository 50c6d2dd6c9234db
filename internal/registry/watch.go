// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"pocsclinic/internal/models"
)

// Loader returns the current persisted posts.
type Loader interface {
	LoadAll() ([]models.Post, error)
}

// debounce collapses the burst of events a single append produces.
const debounce = 200 * time.Millisecond

// ReloadFunc is told the outcome of every reload Watch attempts.
type ReloadFunc func(posts int, err error)

// Watch reloads r from src whenever the registry file at path changes,
// until ctx is done. The parent directory is watched rather than the file
// so that the file may be created or replaced after Watch starts. A reload
// that fails keeps the previous contents. onReload may be nil.
func Watch(ctx context.Context, r *Registry, src Loader, path string, onReload ReloadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	name := filepath.Clean(path)
	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			err := Reload(r, src)
			if onReload != nil {
				onReload(r.Len(), err)
			}
			if err != nil {
				slog.Warn("registry reload failed", "path", path, "error", err)
				continue
			}
			slog.Info("registry reloaded", "path", path, "posts", r.Len())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("registry watcher error", "error", err)
		}
	}
}

// Reload replaces r's contents with what src currently holds.
func Reload(r *Registry, src Loader) error {
	posts, err := src.LoadAll()
	if err != nil {
		return err
	}
	r.Replace(posts)
	return nil
}
