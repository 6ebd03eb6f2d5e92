// Package appshell coordinates the application lifecycle of a multi-window
// host process: cancelable quit, authoritative exit, exactly-once shutdown,
// and a one-shot ready signal, with observers consulted at each checkpoint.
//
// Example usage:
//
//	shell, err := appshell.New(
//	    appshell.WithLogger(log.NewZerologAdapter()),
//	    appshell.WithUserDataDir(dataDir),
//	)
//	if err != nil {
//	    // handle err
//	}
//	shell.Windows().Add("main", nil)
//	code := shell.Run(appshell.LaunchInfo{"config": path})
//	os.Exit(code)
//
// All App methods except Post must run on the loop goroutine (or before Run
// starts). Other goroutines, such as signal handlers, hand work to the loop
// with Post.
package appshell

import (
	"github.com/hostkit/appshell/internal/app"
	"github.com/hostkit/appshell/internal/ports"
	"github.com/hostkit/appshell/internal/runloop"
	"github.com/hostkit/appshell/internal/windows"
	"github.com/hostkit/appshell/pkg/log"
)

// Re-exported core types. Import pkg/log directly for logging adapters.
type (
	// Observer receives lifecycle notifications; see app.Observer.
	Observer = app.Observer

	// BaseObserver provides no-op defaults for Observer.
	BaseObserver = app.BaseObserver

	// TabObserver is the optional native-tabbing capability.
	TabObserver = app.TabObserver

	// LaunchInfo carries metadata delivered with OnFinishLaunching.
	LaunchInfo = app.LaunchInfo

	// WindowRef identifies a window.
	WindowRef = ports.WindowRef

	// WindowSet is the window collaborator interface.
	WindowSet = ports.WindowSet

	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger
)

// App ties the lifecycle coordinator to a scheduling loop and a window set.
type App struct {
	coordinator *app.Coordinator
	loop        *runloop.Loop
	windowSet   ports.WindowSet
	managed     *windows.Set
	logger      log.Logger
	plugins     []Plugin
}

// New creates an App. Unless WithWindowSet supplies a custom collaborator, a
// managed in-memory window set is created and reachable via Windows.
// Registered plugins are initialized here, in registration order.
func New(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	loop := runloop.New()

	var managed *windows.Set
	windowSet := o.windowSet
	if windowSet == nil {
		managed = windows.NewSet(o.logger)
		windowSet = managed
	}

	coordinator := app.NewCoordinator(app.Config{
		Windows:     windowSet,
		Logger:      o.logger,
		SetExitCode: loop.SetExitCode,
		ExitFunc:    o.exitFunc,
		UserDataDir: o.userDataDir,
		Name:        o.name,
		Version:     o.version,
	})
	if managed != nil {
		managed.Bind(coordinator)
	}

	a := &App{
		coordinator: coordinator,
		loop:        loop,
		windowSet:   windowSet,
		managed:     managed,
		logger:      o.logger,
		plugins:     o.plugins,
	}

	pluginCfg := PluginConfig{
		Logger:      o.logger,
		UserDataDir: o.userDataDir,
		AppName:     coordinator.Name(),
	}
	for _, p := range a.plugins {
		if err := p.Initialize(pluginCfg); err != nil {
			o.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()), log.Err(err))
			return nil, err
		}
		coordinator.AddObserver(p)
		o.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}
	for _, ob := range o.observers {
		coordinator.AddObserver(ob)
	}

	return a, nil
}

// Run delivers the launch notifications, then drives the scheduling loop
// until shutdown stops it. Returns the process exit code.
func (a *App) Run(info LaunchInfo) int {
	a.coordinator.SetQuitClosure(a.loop.Quit)
	a.loop.Post(func() {
		a.coordinator.WillFinishLaunching()
		a.coordinator.DidFinishLaunching(info)
	})
	return a.loop.Run()
}

// Post schedules fn on the loop goroutine. Safe to call from any goroutine.
func (a *App) Post(fn func()) {
	a.loop.Post(fn)
}

// Windows returns the managed window set, or nil when a custom WindowSet
// collaborator was supplied.
func (a *App) Windows() *windows.Set {
	return a.managed
}

// Quit requests a cancelable termination.
func (a *App) Quit() { a.coordinator.Quit() }

// Exit requests an unconditional termination with the given exit code.
func (a *App) Exit(code int) { a.coordinator.Exit(code) }

// Shutdown runs the final teardown immediately, bypassing window closing.
func (a *App) Shutdown() { a.coordinator.Shutdown() }

// WhenReady returns a handle that completes once launch has finished.
func (a *App) WhenReady() <-chan struct{} { return a.coordinator.WhenReady() }

// IsReady reports whether launch has finished.
func (a *App) IsReady() bool { return a.coordinator.IsReady() }

// AddObserver registers a lifecycle observer.
func (a *App) AddObserver(o Observer) { a.coordinator.AddObserver(o) }

// RemoveObserver deregisters a lifecycle observer.
func (a *App) RemoveObserver(o Observer) { a.coordinator.RemoveObserver(o) }

// OnWindowAllClosed forwards the all-windows-closed completion from a custom
// window collaborator.
func (a *App) OnWindowAllClosed() { a.coordinator.OnWindowAllClosed() }

// OnWindowCloseCancelled forwards a refused window close from a custom
// window collaborator.
func (a *App) OnWindowCloseCancelled(w WindowRef) { a.coordinator.OnWindowCloseCancelled(w) }

// OpenFile asks observers to handle an open-file request.
func (a *App) OpenFile(path string) bool { return a.coordinator.OpenFile(path) }

// OpenURL forwards an open-url request to observers.
func (a *App) OpenURL(url string) { a.coordinator.OpenURL(url) }

// Activate forwards an application-activated notification to observers.
func (a *App) Activate(hasVisibleWindows bool) { a.coordinator.Activate(hasVisibleWindows) }

// NewWindowForTab forwards a new-window-for-tab request to TabObserver
// implementors.
func (a *App) NewWindowForTab() { a.coordinator.NewWindowForTab() }

// Name returns the application name.
func (a *App) Name() string { return a.coordinator.Name() }

// SetName overrides the application name.
func (a *App) SetName(name string) { a.coordinator.SetName(name) }

// Version returns the application version.
func (a *App) Version() string { return a.coordinator.Version() }

// SetVersion overrides the application version.
func (a *App) SetVersion(version string) { a.coordinator.SetVersion(version) }

// BadgeCount returns the dock badge count.
func (a *App) BadgeCount() int { return a.coordinator.BadgeCount() }

// SetBadgeCount sets the dock badge count.
func (a *App) SetBadgeCount(count int) { a.coordinator.SetBadgeCount(count) }
