// Package testutil provides test fixtures and an isolated environment for
// command tests.
//
// # Fixtures
//
// Profile fixtures are embedded using go:embed:
//
//	fixtures/Shell.profile      current format, no parent
//	fixtures/Work.profile       current format, Parent=Shell.profile
//	fixtures/Legacy.desktop     legacy desktop entry
//	fixtures/profilectlrc.toml  default, favorites and a shortcut
//	fixtures/tabs.txt           tabs file for "profilectl tabs"
//
// # Test Environment
//
// NewTestEnv creates temporary data and config directories, builds an
// app.App over them and installs it as app.Default for the duration of the
// test:
//
//	env := testutil.NewTestEnv(t)
//	env.InstallFixtures()
//	work := env.LoadProfile(testutil.WorkProfile)
//
// Reload rebuilds the App, which is how tests check what a later process
// would read back from disk.
package testutil
