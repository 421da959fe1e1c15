// Package logging configures the process-wide logrus logger used by the
// hypotcts command and handed to rs.Context.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu   sync.Mutex
	log  *logrus.Logger
	file *os.File
)

// Init initializes the logger with the given level name, optional log file,
// and whether to also write to stderr. An unknown level falls back to info.
// A log file opened by an earlier Init is closed.
func Init(level, logFile string, console bool) error {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	var f *os.File
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return err
		}
		f, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}

	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}

	mu.Lock()
	prev := file
	log, file = l, f
	mu.Unlock()

	if prev != nil {
		return prev.Close()
	}
	return nil
}

// Get returns the logger instance, creating a default one if Init was
// never called.
func Get() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = logrus.New()
	}
	return log
}

// Discard returns a logger that drops every entry. Library packages use it
// when the caller supplies none.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
