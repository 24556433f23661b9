// Package app provides the application context for profilectl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths   *config.Paths     // Data and config directories
//	    Manager *manager.Manager  // Profile and session manager
//	    Journal *audit.Logger     // Change journal
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	app, err := app.New()
//
//	// Testing with custom dependencies
//	app, err := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithManager(m),
//	)
//
// # Available Options
//
//	WithPaths(paths)      // Custom path configuration
//	WithManager(m)        // Custom manager
//	WithJournal(logger)   // Custom journal location
package app
