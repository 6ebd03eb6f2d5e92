package cliconfig

import (
	"os"
	"strings"
)

// ApplyEnvConfig applies APPSHELL_* environment variables to the Config.
// Environment values override file config but lose to explicitly set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("app-name", os.Getenv("APPSHELL_APP_NAME"), &cfg.AppName)
	s.setString("app-version", os.Getenv("APPSHELL_APP_VERSION"), &cfg.AppVersion)
	s.setString("user-data-dir", os.Getenv("APPSHELL_USER_DATA_DIR"), &cfg.UserDataDir)
	s.setString("dirty-dir", os.Getenv("APPSHELL_DIRTY_DIR"), &cfg.DirtyDir)
	s.setString("dirty-pattern", os.Getenv("APPSHELL_DIRTY_PATTERN"), &cfg.DirtyPattern)
	s.setString("log-level", os.Getenv("APPSHELL_LOG_LEVEL"), &cfg.LogLevel)

	if v := os.Getenv("APPSHELL_WINDOWS"); v != "" && !changed["window"] {
		var titles []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				titles = append(titles, t)
			}
		}
		if len(titles) > 0 {
			cfg.WindowTitles = titles
		}
	}
}
