package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
)

// reloadDelay collapses the burst of events a single save produces
// (truncate, write, rename, create) into one reload
const reloadDelay = 100 * time.Millisecond

// ChangeHandler receives the previous and the reloaded configuration
type ChangeHandler func(old, new *Config)

// ErrorHandler receives reload failures; the previous configuration stays
// in effect
type ErrorHandler func(err error)

// Watch reloads the file at path whenever it changes and calls onChange
// with the previous and new configuration. Events are debounced: the file
// is read once it has been quiet for reloadDelay. It blocks until ctx is
// done.
// The parent directory is watched so editors that replace the file on save
// are handled too.
func Watch(ctx context.Context, path string, current *Config, onChange ChangeHandler, onError ErrorHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create config watcher").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.watch")
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return mdwerror.Wrap(err, "failed to resolve config path").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.watch").
			WithDetail("path", path)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return mdwerror.Wrap(err, "failed to watch config directory").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.watch").
			WithDetail("path", path)
	}

	reload := time.NewTimer(reloadDelay)
	reload.Stop()
	defer reload.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reload.Reset(reloadDelay)

		case <-reload.C:
			next, err := Load(abs)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onChange != nil {
				onChange(current, next)
			}
			current = next

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(mdwerror.Wrap(err, "config watcher failed").
					WithCode(mdwerror.CodeConfigError).
					WithOperation("config.watch"))
			}
		}
	}
}
