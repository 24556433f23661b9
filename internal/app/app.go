// Package app provides the application context for profilectl.
// It allows dependency injection for testing.
package app

import (
	"github.com/firefly-engineering/profilectl/internal/audit"
	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/logging"
	"github.com/firefly-engineering/profilectl/internal/manager"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Manager owns the loaded profiles and sessions
	Manager *manager.Manager

	// Journal records manager changes
	Journal *audit.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithManager sets a custom manager. It should use the same paths as the
// app.
func WithManager(m *manager.Manager) Option {
	return func(a *App) {
		a.Manager = m
	}
}

// WithJournal sets a custom journal
func WithJournal(j *audit.Logger) Option {
	return func(a *App) {
		a.Journal = j
	}
}

// New creates a new App with the given options.
// If no manager is provided via WithManager, one is created over the app's
// paths. The journal is subscribed to the manager's notifications.
func New(opts ...Option) (*App, error) {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Paths == nil {
		app.Paths = config.DefaultPaths()
	}
	if app.Journal == nil {
		app.Journal = audit.NewLogger(app.Paths.JournalFile())
	}
	if app.Manager == nil {
		m, err := manager.New(manager.WithPaths(app.Paths))
		if err != nil {
			return nil, err
		}
		app.Manager = m
	}

	app.Manager.Subscribe(app.Journal.Record)
	logging.Debug("application initialised", "data_home", app.Paths.DataHome, "config_dir", app.Paths.ConfigDir)

	return app, nil
}

// Default is the application instance used by the CLI commands. The root
// command sets it once the path flags are parsed.
var Default *App

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault clears the default application instance
func ResetDefault() {
	Default = nil
}
