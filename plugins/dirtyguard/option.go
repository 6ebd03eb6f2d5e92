package dirtyguard

import "github.com/hostkit/appshell"

// WithDirtyGuard returns an appshell Option that enables the unsaved-work
// guard for the given directory.
//
// Usage:
//
//	shell, err := appshell.New(
//	    dirtyguard.WithDirtyGuard(dirtyguard.Config{Dir: workDir}),
//	)
func WithDirtyGuard(cfg Config) appshell.Option {
	return appshell.WithPlugin(New(cfg))
}
