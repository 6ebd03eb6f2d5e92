// Package cliconfig holds the host configuration for the appshell command,
// merged from config file, APPSHELL_* environment variables, and flags.
// Precedence is flags over environment over file over defaults.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI configuration for the appshell host.
type Config struct {
	// AppName and AppVersion override the values derived from the executable
	// and build info.
	AppName    string
	AppVersion string

	// UserDataDir is created during launch. Derived from the home directory
	// when empty.
	UserDataDir string

	// DirtyDir enables the dirty-guard observer: quit is vetoed while marker
	// files matching DirtyPattern exist in this directory.
	DirtyDir     string
	DirtyPattern string

	// WindowTitles lists the windows to open at launch.
	WindowTitles []string

	// LogLevel is a zerolog level name (trace, debug, info, warn, error).
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AppName:      "appshell",
		DirtyPattern: "*.dirty",
		WindowTitles: []string{"main"},
		LogLevel:     "info",
	}
}

// Validate checks the configuration and sets derived defaults.
func (c *Config) Validate() error {
	if c.AppName == "" {
		return fmt.Errorf("app name must not be empty")
	}
	if c.UserDataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("derive user data dir: %w", err)
		}
		c.UserDataDir = filepath.Join(home, ".appshell", "data")
	}
	if c.DirtyDir != "" && c.DirtyPattern == "" {
		c.DirtyPattern = "*.dirty"
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a string slice if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}
