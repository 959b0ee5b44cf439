package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchConfig calls regenerate after configPath changes until ctx is done.
//
// The parent directory is watched instead of the file: editors that save by
// renaming a temp file over the original would otherwise detach the watch.
// Bursts of events are collapsed into one call after debounce.
func watchConfig(ctx context.Context, logger zerolog.Logger, configPath string, debounce time.Duration, regenerate func() error) error {
	target, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}

	logger.Info().
		Str("event", "constgen.watch_started").
		Str("path", target).
		Msg("watching config for changes")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str("event", "constgen.watch_stopped").Msg("config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().
				Str("event", "constgen.config_changed").
				Str("op", event.Op.String()).
				Msg("config file changed")

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Str("event", "constgen.watch_error").Msg("watcher error")

		case <-fire:
			fire = nil
			if err := regenerate(); err != nil {
				// The previous output stays in place.
				logger.Error().
					Err(err).
					Str("event", "constgen.regenerate_failed").
					Msg("regeneration failed")
			}
		}
	}
}
