package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turtle/internal/config"
	"github.com/vovakirdan/turtle/internal/logging"
	"github.com/vovakirdan/turtle/internal/storage"
)

// runtimeEnv is what every command needs before a session starts: the
// merged configuration, a logger and the save database.
type runtimeEnv struct {
	dir    string
	gameID string
	cfg    config.Config
	logger *log.Logger
	store  *storage.Store

	closers []io.Closer
}

// setup loads configuration for dir and applies command-line overrides.
// logOut receives logs when no log file is configured.
func setup(dir string, logOut io.Writer, prefix string) (*runtimeEnv, error) {
	env := &runtimeEnv{}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", dir, err)
		}
		env.dir = abs
		env.gameID = abs
	}

	cfg, err := config.Load(env.dir, flagConfig)
	if err != nil {
		return nil, err
	}
	if flagFPS > 0 {
		cfg.Window.FPS = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DB = flagDBPath
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	env.cfg = cfg

	logger, closer, err := logging.New(cfg.Log, logOut, prefix)
	if err != nil {
		return nil, err
	}
	env.logger = logger
	env.closers = append(env.closers, closer)

	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		// Saves fall back to memory; the game still runs.
		logger.Warn("could not open save database", "path", cfg.Storage.DB, "error", err)
	} else {
		env.store = store
		env.closers = append(env.closers, store)
	}
	return env, nil
}

// close releases the store and the log file, newest first.
func (e *runtimeEnv) close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
