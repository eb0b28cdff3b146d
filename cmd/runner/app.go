package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boko-runner/internal/config"
	"github.com/vovakirdan/boko-runner/internal/profile"
	"github.com/vovakirdan/boko-runner/internal/storage"
)

// app bundles what every command needs: the logger, the profile and its
// backends.
type app struct {
	logger  *log.Logger
	store   profile.Store
	sqlite  *storage.Store // nil with the xml backend
	mirror  *storage.RedisLeaderboard
	profile *profile.Profile
	closers []func() error
}

// openApp builds the logger, opens the profile store and, when
// configured, the Redis mirror. Interactive commands log to a file so
// the TUI keeps the terminal.
func openApp(ctx context.Context, interactive bool) (*app, error) {
	a := &app{}

	logger, closeLog, err := newLogger(interactive)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)

	switch flagStore {
	case storeXML:
		x, err := storage.NewXMLFile(flagDBPath, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.store = x
	default:
		s, err := storage.Open(flagDBPath, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.sqlite = s
		a.store = s
		a.closers = append(a.closers, s.Close)
	}

	if flagRedis != "" {
		client, err := storage.NewRedisClient(flagRedis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		mirror, err := storage.NewRedisLeaderboard(&storage.RedisConfig{Client: client})
		if err != nil {
			a.Close()
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := mirror.Ping(pingCtx); err != nil {
			logger.Warn("leaderboard mirror unreachable", "addr", flagRedis, "err", err)
		}
		cancel()
		a.mirror = mirror
	}

	opts := profile.Options{Store: a.store, Logger: logger}
	if a.mirror != nil {
		opts.Mirror = a.mirror
	}
	p, err := profile.Open(ctx, opts)
	if err != nil {
		if p == nil {
			a.Close()
			return nil, err
		}
		// Corrupt save: play on with defaults
		logger.Warn("profile reset to defaults", "err", err)
	}
	a.profile = p
	return a, nil
}

// save persists the profile and reports failures on stderr.
func (a *app) save(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.profile.Save(ctx); err != nil {
		a.logger.Error("cannot save profile", "err", err)
		return err
	}
	return nil
}

// Close releases every backend in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}

// newLogger creates the root logger. Interactive sessions write to
// ~/.boko-runner/runner.log.
func newLogger(interactive bool) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if interactive {
		w = io.Discard
		if dir := config.AppDir(); dir != "" {
			if f, err := openLogFile(filepath.Join(dir, "runner.log")); err == nil {
				w = f
				closeFn = f.Close
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           level,
	})
	return logger, closeFn, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// isCorrupt reports whether err comes from an unreadable save.
func isCorrupt(err error) bool {
	return errors.Is(err, storage.ErrCorruptSave)
}
