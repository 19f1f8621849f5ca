package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/John-Tuesday/unverdad/internal/config"
	"github.com/John-Tuesday/unverdad/internal/logging"
	"github.com/John-Tuesday/unverdad/internal/store"
	"github.com/spf13/afero"
)

// App holds what every command shares: configuration, the store and output.
type App struct {
	Fs     afero.Fs
	Out    io.Writer
	Err    io.Writer
	Paths  config.Paths
	Config *config.Config
	Store  *store.Store
	Logger *slog.Logger

	verbose int
	debug   bool
	quiet   bool

	closers []io.Closer
}

// NewApp returns an App on the OS file system.
func NewApp(out, errOut io.Writer) *App {
	return &App{
		Fs:     config.AppFs,
		Out:    out,
		Err:    errOut,
		Logger: slog.Default(),
	}
}

// setup resolves paths, configures logging and loads configuration.
// Values already set, as in tests, are kept.
func (a *App) setup() error {
	if a.Paths == (config.Paths{}) {
		paths, err := config.DefaultPaths()
		if err != nil {
			return err
		}
		a.Paths = paths
	}

	logger, closer, err := logging.Setup(a.Fs, a.Err, logging.Level(a.verbose, a.debug, a.quiet), a.Paths.LogFile())
	if err != nil {
		// The console still works without the log file.
		logger, closer, err = logging.Setup(a.Fs, a.Err, logging.Level(a.verbose, a.debug, a.quiet), "")
		if err != nil {
			return err
		}
	}
	a.Logger = logger
	a.closers = append(a.closers, closer)
	slog.SetDefault(logger)

	if a.Config == nil {
		cfg, err := config.Load(a.Paths)
		if err != nil {
			return err
		}
		a.Config = cfg
	}
	return nil
}

// openStore connects to the configured database, creates missing tables
// and applies configured game paths.
func (a *App) openStore(ctx context.Context) error {
	if a.Store != nil {
		return nil
	}
	if a.Config.Database.Driver == "sqlite" || a.Config.Database.Driver == "" {
		if err := a.Fs.MkdirAll(a.Paths.DataHome, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	s, err := store.Open(ctx, a.Config.Database.Driver, a.Config.Database.DSN, store.WithLogger(a.Logger))
	if err != nil {
		return err
	}
	a.Store = s
	a.closers = append(a.closers, s)

	if err := s.Init(ctx, store.StrivePreset); err != nil {
		return err
	}
	if _, err := s.SyncGamePaths(ctx, a.Config.Games); err != nil {
		return err
	}
	return nil
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
