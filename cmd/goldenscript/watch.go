package main

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// watchDir re-runs (or regenerates, if update is set) every script under
// dir whenever fsnotify reports a write or create event in it, until ctx
// is canceled.
func watchDir(ctx context.Context, dir string, update bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log.Info().Str("dir", dir).Bool("update", update).Msg("watching for changes")

	run := func() {
		if err := runPaths([]string{dir}, update); err != nil {
			log.Error().Err(err).Msg("watch run failed")
		}
	}
	run()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Info().Str("file", event.Name).Msg("change detected")
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}
