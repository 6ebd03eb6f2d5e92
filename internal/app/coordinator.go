package app

import (
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/hostkit/appshell/internal/ports"
	"github.com/hostkit/appshell/pkg/log"
)

// Config carries the coordinator's collaborators and overrides. Windows is
// required; everything else has a usable zero value.
type Config struct {
	// Windows is the window collaborator consulted during termination.
	Windows ports.WindowSet

	// Logger receives lifecycle transition logs. Defaults to a no-op logger.
	Logger log.Logger

	// SetExitCode hands the exit code to the running scheduling loop and
	// reports whether the loop is available. When nil or returning false,
	// Exit terminates the process directly via ExitFunc.
	SetExitCode func(code int) bool

	// ExitFunc terminates the process when no scheduling loop is running.
	// Defaults to os.Exit.
	ExitFunc func(code int)

	// UserDataDir is created (best effort) during DidFinishLaunching.
	UserDataDir string

	// Name and Version override the values derived from the executable and
	// build info.
	Name    string
	Version string
}

// Coordinator sequences the transition from running to terminated for a
// multi-window host: cancelable quit, authoritative exit, and an exactly-once
// shutdown, with observers consulted along the way.
//
// The coordinator is not safe for concurrent use. All methods must be called
// from the single loop goroutine; re-entrancy from nested observer callbacks
// is supported.
type Coordinator struct {
	windows ports.WindowSet
	logger  log.Logger

	observers observerList

	quitting     bool
	exiting      bool
	shutdownDone bool
	ready        bool

	quitMainLoop func()
	readySignal  *ReadySignal

	setExitCode func(int) bool
	exitFunc    func(int)

	userDataDir string
	name        string
	version     string
	badgeCount  int
}

// NewCoordinator creates a coordinator from cfg.
func NewCoordinator(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	exitFunc := cfg.ExitFunc
	if exitFunc == nil {
		exitFunc = os.Exit
	}
	return &Coordinator{
		windows:     cfg.Windows,
		logger:      logger,
		setExitCode: cfg.SetExitCode,
		exitFunc:    exitFunc,
		userDataDir: cfg.UserDataDir,
		name:        cfg.Name,
		version:     cfg.Version,
	}
}

// AddObserver registers an observer. Observers are notified in registration
// order; duplicates are not filtered.
func (c *Coordinator) AddObserver(o Observer) {
	c.observers.add(o)
}

// RemoveObserver deregisters an observer by identity. No-op if absent.
func (c *Coordinator) RemoveObserver(o Observer) {
	c.observers.remove(o)
}

// Quit requests a cancelable termination. Observers get a before-quit veto;
// if none veto, windows are asked to close cooperatively and shutdown is
// deferred until they all report closed. Idempotent while a quit is already
// in flight.
func (c *Coordinator) Quit() {
	if c.quitting {
		return
	}

	c.quitting = c.handleBeforeQuit()
	if !c.quitting {
		c.logger.Debug("quit vetoed before closing windows")
		return
	}

	if c.windows.IsEmpty() {
		c.notifyAndShutdown()
	} else {
		c.logger.Info("quit requested, closing windows")
		c.windows.CloseAll()
	}
}

// Exit requests an unconditional termination with the given exit code. No
// observer may veto it, and windows are destroyed rather than asked to close.
// When the scheduling loop is not yet running the process is terminated
// immediately without notifying anyone.
func (c *Coordinator) Exit(code int) {
	if c.setExitCode == nil || !c.setExitCode(code) {
		// Scheduling loop is not ready, leave directly.
		c.exitFunc(code)
		return
	}

	c.quitting = true
	c.exiting = true

	if c.windows.IsEmpty() {
		c.Shutdown()
	} else {
		c.logger.Info("exit requested, destroying windows", log.Int("code", code))
		c.windows.DestroyAll()
	}
}

// Shutdown is the point of no return: it notifies observers of the final
// quit and stops the scheduling loop. Safe to call multiple times; only the
// first call has any effect. When no quit closure has been supplied yet the
// loop keeps running until SetQuitClosure delivers one.
func (c *Coordinator) Shutdown() {
	if c.shutdownDone {
		return
	}

	c.shutdownDone = true
	c.quitting = true

	c.logger.Info("shutting down")
	c.observers.notify(func(o Observer) { o.OnQuit() })

	if c.quitMainLoop != nil {
		fn := c.quitMainLoop
		c.quitMainLoop = nil
		fn()
	}
	// Otherwise the scheduling loop has not been wired up yet; the closure
	// runs as soon as SetQuitClosure supplies it.
}

// SetQuitClosure supplies the deferred work that stops the scheduling loop.
// If shutdown already completed the closure runs synchronously here instead
// of being stored.
func (c *Coordinator) SetQuitClosure(fn func()) {
	if c.shutdownDone {
		fn()
		return
	}
	c.quitMainLoop = fn
}

// OnWindowCloseCancelled records that a window refused to close. A refusal
// cancels any in-flight quit, since the all-windows-closed completion that
// would drive shutdown will never arrive.
func (c *Coordinator) OnWindowCloseCancelled(window ports.WindowRef) {
	// A refused close is treated as a veto on the whole quit, regardless of
	// which window the refusal came from.
	if c.quitting {
		c.logger.Info("window close cancelled, aborting quit", log.String("window", window.ID()))
		c.quitting = false
	}
}

// OnWindowAllClosed resumes a pending termination once the last window has
// closed. Exit wins over quit; outside either sequence observers get a plain
// all-windows-closed notification.
func (c *Coordinator) OnWindowAllClosed() {
	if c.exiting {
		c.Shutdown()
	} else if c.quitting {
		c.notifyAndShutdown()
	} else {
		c.observers.notify(func(o Observer) { o.OnWindowAllClosed() })
	}
}

// notifyAndShutdown runs the will-quit veto round and, if nobody objects,
// shuts down. A veto cancels the quit and the process keeps running.
func (c *Coordinator) notifyAndShutdown() {
	if c.shutdownDone {
		return
	}

	prevent := false
	c.observers.notify(func(o Observer) { o.OnWillQuit(&prevent) })

	if prevent {
		c.logger.Info("quit vetoed at confirmation")
		c.quitting = false
		return
	}

	c.Shutdown()
}

// handleBeforeQuit runs the before-quit veto round. Every observer is
// notified regardless of earlier vetoes; the result is true when quitting
// should proceed.
func (c *Coordinator) handleBeforeQuit() bool {
	prevent := false
	c.observers.notify(func(o Observer) { o.OnBeforeQuit(&prevent) })
	return !prevent
}

// WhenReady returns a handle that completes once the host has finished
// launching. Handles taken after readiness complete immediately.
func (c *Coordinator) WhenReady() <-chan struct{} {
	if c.readySignal == nil {
		c.readySignal = NewReadySignal()
		if c.ready {
			c.readySignal.Resolve()
		}
	}
	return c.readySignal.Handle()
}

// IsReady reports whether DidFinishLaunching has run.
func (c *Coordinator) IsReady() bool {
	return c.ready
}

// WillFinishLaunching notifies observers that launch setup is about to run.
func (c *Coordinator) WillFinishLaunching() {
	c.observers.notify(func(o Observer) { o.OnWillFinishLaunching() })
}

// DidFinishLaunching marks the host ready: the user-data directory is
// created, the ready signal resolves, and observers are told with the launch
// metadata.
func (c *Coordinator) DidFinishLaunching(info LaunchInfo) {
	if c.userDataDir != "" {
		if err := os.MkdirAll(c.userDataDir, 0o755); err != nil {
			c.logger.Warn("failed to create user data directory",
				log.String("dir", c.userDataDir), log.Err(err))
		}
	}

	c.ready = true
	if c.readySignal != nil {
		c.readySignal.Resolve()
	}

	c.observers.notify(func(o Observer) { o.OnFinishLaunching(info) })
}

// OpenFile asks observers to handle an open-file request. Returns true when
// some observer claimed it.
func (c *Coordinator) OpenFile(path string) bool {
	prevent := false
	c.observers.notify(func(o Observer) { o.OnOpenFile(&prevent, path) })
	return prevent
}

// OpenURL forwards an open-url request to observers.
func (c *Coordinator) OpenURL(url string) {
	c.observers.notify(func(o Observer) { o.OnOpenURL(url) })
}

// Activate forwards an application-activated notification to observers.
func (c *Coordinator) Activate(hasVisibleWindows bool) {
	c.observers.notify(func(o Observer) { o.OnActivate(hasVisibleWindows) })
}

// NewWindowForTab forwards a new-window-for-tab request to observers that
// implement the TabObserver capability.
func (c *Coordinator) NewWindowForTab() {
	c.observers.notify(func(o Observer) {
		if t, ok := o.(TabObserver); ok {
			t.OnNewWindowForTab()
		}
	})
}

// Name returns the application name: the configured override when present,
// otherwise the executable base name.
func (c *Coordinator) Name() string {
	if c.name != "" {
		return c.name
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Base(exe)
	}
	return "appshell"
}

// SetName overrides the application name.
func (c *Coordinator) SetName(name string) {
	c.name = name
}

// Version returns the application version: the configured override when
// present, otherwise the main module version from build info.
func (c *Coordinator) Version() string {
	if c.version != "" {
		return c.version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// SetVersion overrides the application version.
func (c *Coordinator) SetVersion(version string) {
	c.version = version
}

// BadgeCount returns the current dock badge count.
func (c *Coordinator) BadgeCount() int {
	return c.badgeCount
}

// SetBadgeCount sets the dock badge count.
func (c *Coordinator) SetBadgeCount(count int) {
	c.badgeCount = count
}
