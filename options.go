package appshell

import (
	"github.com/hostkit/appshell/pkg/log"
)

// Plugin is an observer that needs host facilities before it can run.
// Plugins are initialized by New in registration order and registered as
// observers afterwards.
type Plugin interface {
	Observer

	// Name returns the plugin identifier, used in logs.
	Name() string

	// Initialize prepares the plugin. Returning an error aborts New.
	Initialize(cfg PluginConfig) error
}

// PluginConfig is passed to every plugin during initialization.
type PluginConfig struct {
	Logger      log.Logger
	UserDataDir string
	AppName     string
}

// Option configures optional behavior of an App.
type Option func(*options)

type options struct {
	logger      log.Logger
	observers   []Observer
	plugins     []Plugin
	windowSet   WindowSet
	exitFunc    func(int)
	userDataDir string
	name        string
	version     string
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets the logger used by the coordinator and managed window set.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers a lifecycle observer at construction time.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, observer)
	}
}

// WithPlugin registers a plugin to be initialized by New.
// Use this for custom plugins; built-in plugins provide their own options,
// like dirtyguard.WithDirtyGuard.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithWindowSet supplies a custom window collaborator. The host is then
// responsible for routing completions back via OnWindowAllClosed and
// OnWindowCloseCancelled.
func WithWindowSet(set WindowSet) Option {
	return func(o *options) {
		o.windowSet = set
	}
}

// WithExitFunc overrides the process-exit function used when Exit is called
// before the loop runs. Defaults to os.Exit. Intended for tests.
func WithExitFunc(fn func(code int)) Option {
	return func(o *options) {
		o.exitFunc = fn
	}
}

// WithUserDataDir sets the storage directory ensured during launch.
func WithUserDataDir(dir string) Option {
	return func(o *options) {
		o.userDataDir = dir
	}
}

// WithName overrides the application name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithVersion overrides the application version.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}
