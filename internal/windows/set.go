// Package windows provides the reference window-set collaborator: an ordered
// in-memory window list implementing the close/destroy protocol the lifecycle
// coordinator depends on. Hosts with real windowing supply their own
// ports.WindowSet instead.
//
// Like the coordinator, a Set must be driven from the loop goroutine.
package windows

import (
	"github.com/hostkit/appshell/internal/ports"
	"github.com/hostkit/appshell/pkg/log"
)

// Events receives window-set completions. The lifecycle coordinator
// implements it.
type Events interface {
	OnWindowAllClosed()
	OnWindowCloseCancelled(window ports.WindowRef)
}

// Set is an ordered collection of windows.
type Set struct {
	logger  log.Logger
	events  Events
	windows []*Window
}

// NewSet creates an empty set. Events may be bound later with Bind, which
// breaks the construction cycle between the set and the coordinator.
func NewSet(logger log.Logger) *Set {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Set{logger: logger}
}

// Bind attaches the events sink that receives completions.
func (s *Set) Bind(events Events) {
	s.events = events
}

// Add opens a new window with the given title and optional close guard.
func (s *Set) Add(title string, guard CloseGuard) *Window {
	w := newWindow(s, title, guard)
	s.windows = append(s.windows, w)
	s.logger.Debug("window opened", log.String("id", w.id), log.String("title", title))
	return w
}

// Len returns the number of open windows.
func (s *Set) Len() int {
	return len(s.windows)
}

// IsEmpty reports whether any windows remain open.
func (s *Set) IsEmpty() bool {
	return len(s.windows) == 0
}

// CloseAll asks every window to close cooperatively. Windows whose guard
// refuses stay open and surface a cancelled-close event.
func (s *Set) CloseAll() {
	snapshot := make([]*Window, len(s.windows))
	copy(snapshot, s.windows)
	for _, w := range snapshot {
		w.Close()
	}
}

// DestroyAll tears down every window unconditionally.
func (s *Set) DestroyAll() {
	snapshot := make([]*Window, len(s.windows))
	copy(snapshot, s.windows)
	for _, w := range snapshot {
		w.Destroy()
	}
}

func (s *Set) remove(w *Window) {
	found := false
	for i, item := range s.windows {
		if item == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		// Already closed; Close and Destroy stay idempotent.
		return
	}
	s.logger.Debug("window closed", log.String("id", w.id))
	if len(s.windows) == 0 && s.events != nil {
		s.events.OnWindowAllClosed()
	}
}

func (s *Set) closeCancelled(w *Window) {
	s.logger.Debug("window refused to close", log.String("id", w.id))
	if s.events != nil {
		s.events.OnWindowCloseCancelled(w)
	}
}

var _ ports.WindowSet = (*Set)(nil)
