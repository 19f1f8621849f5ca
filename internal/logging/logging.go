// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/afero"
)

// Level maps the command line verbosity flags to a log level.
// quiet wins over debug, debug wins over verbose.
func Level(verbose int, debug, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case debug:
		return slog.LevelDebug
	case verbose >= 2:
		return slog.LevelDebug
	case verbose == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Setup builds a logger writing text records at level or above to stderr
// and, when logFile is set, every debug record to logFile. The returned
// closer closes the file.
func Setup(fs afero.Fs, stderr io.Writer, level slog.Level, logFile string) (*slog.Logger, io.Closer, error) {
	console := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	if logFile == "" {
		return slog.New(console), nopCloser{}, nil
	}

	if err := fs.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := fs.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	file := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(slogmulti.Fanout(console, file)), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
