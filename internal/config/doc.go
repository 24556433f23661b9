// Package config describes where profilectl keeps its files.
//
// # Layout
//
// Profiles live in a "profiles" subdirectory of every data directory. The
// data directories follow the XDG base directory specification:
//
//	$XDG_DATA_HOME/profilectl/profiles      writable, searched first
//	$XDG_DATA_DIRS/*/profilectl/profiles    read-only system profiles
//	$XDG_CONFIG_HOME/profilectl/profilectlrc.toml
//
// PROFILECTL_DATA_DIR replaces the whole data search path with a single
// directory and PROFILECTL_CONFIG_DIR replaces the config directory. Both
// are mainly useful for tests and portable setups.
//
// # Lookup
//
// Locate resolves a relative path against the search path using
// filepath-securejoin, so a relative name can never resolve outside the
// directory it was looked up in.
package config
