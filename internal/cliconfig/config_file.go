package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML field names.
type FileConfig struct {
	AppName      string   `toml:"app_name"`
	AppVersion   string   `toml:"app_version"`
	UserDataDir  string   `toml:"user_data_dir"`
	DirtyDir     string   `toml:"dirty_dir"`
	DirtyPattern string   `toml:"dirty_pattern"`
	WindowTitles []string `toml:"windows"`
	LogLevel     string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.appshell/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".appshell", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("app-name", fc.AppName, &cfg.AppName)
	s.setString("app-version", fc.AppVersion, &cfg.AppVersion)
	s.setString("user-data-dir", fc.UserDataDir, &cfg.UserDataDir)
	s.setString("dirty-dir", fc.DirtyDir, &cfg.DirtyDir)
	s.setString("dirty-pattern", fc.DirtyPattern, &cfg.DirtyPattern)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setStrings("window", fc.WindowTitles, &cfg.WindowTitles)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
