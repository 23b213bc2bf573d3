// Package logger builds the logrus logger shared by moodline components.
//
// The TUI owns the terminal, so log output goes to a file; an empty path
// discards everything.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to path at the given level. Unknown levels fall
// back to info. The returned close func releases the log file.
func New(levelStr, path string) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	level, err := logrus.ParseLevel(strings.TrimSpace(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	path = strings.TrimSpace(path)
	if path == "" {
		log.SetOutput(io.Discard)
		return log, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	return log, file.Close, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
