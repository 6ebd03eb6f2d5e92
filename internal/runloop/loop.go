// Package runloop implements the cooperative scheduling loop that drives the
// lifecycle coordinator. All coordinator and window-set calls happen on the
// loop goroutine; other goroutines hand work to the loop with Post.
package runloop

import "sync"

// Loop is a single-goroutine task loop. Run drains posted tasks until Quit
// fires, then returns the exit code.
type Loop struct {
	tasks    chan func()
	quit     chan struct{}
	quitOnce sync.Once

	// Written on the loop goroutine only.
	running  bool
	exitCode int
}

// New creates a loop ready to accept posted tasks.
func New() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
	}
}

// Post schedules fn to run on the loop goroutine. Tasks posted after Quit
// are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.quit:
	}
}

// Quit stops the loop. Safe to call multiple times and from any goroutine.
func (l *Loop) Quit() {
	l.quitOnce.Do(func() {
		close(l.quit)
	})
}

// SetExitCode records the exit code Run should return and reports whether
// the loop is available to honor it. Before Run has started it returns
// false and the caller must terminate the process itself.
//
// Must be called from the loop goroutine (or before Run, when no other
// goroutine is involved yet).
func (l *Loop) SetExitCode(code int) bool {
	if !l.running {
		return false
	}
	l.exitCode = code
	return true
}

// Run processes tasks until Quit fires and returns the exit code. It must
// be called at most once.
func (l *Loop) Run() int {
	l.running = true
	defer func() { l.running = false }()

	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.quit:
			return l.exitCode
		}
	}
}
