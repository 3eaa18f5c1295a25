// Package logging builds the runtime's structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/turtle/internal/config"
)

// Rotation limits for log files.
const (
	maxSizeMB  = 20
	maxBackups = 3
	maxAgeDays = 14
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger for cfg. When cfg.File is set, output goes to a
// rotating file and fallback is ignored; otherwise output goes to fallback,
// which may be nil to discard logs. The returned closer flushes the file.
func New(cfg config.LogConfig, fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		l, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	var (
		out    io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	switch {
	case cfg.File != "":
		path := config.ExpandHome(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		out, closer = lj, lj
	case fallback != nil:
		out = fallback
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
