package windows

import "github.com/google/uuid"

// CloseGuard decides whether a window may close cooperatively. Returning
// false refuses the close, which cancels any in-flight quit.
type CloseGuard func() bool

// Window is a single host window tracked by a Set. It carries no rendering
// state; it exists to exercise the close/destroy protocol.
type Window struct {
	id    string
	title string
	guard CloseGuard
	set   *Set
}

// ID returns the window's unique identifier.
func (w *Window) ID() string {
	return w.id
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// Close asks the window to close cooperatively. A guard refusal is reported
// to the set's events as a cancelled close and the window stays open.
func (w *Window) Close() {
	if w.guard != nil && !w.guard() {
		w.set.closeCancelled(w)
		return
	}
	w.set.remove(w)
}

// Destroy closes the window unconditionally, bypassing the guard.
func (w *Window) Destroy() {
	w.set.remove(w)
}

func newWindow(set *Set, title string, guard CloseGuard) *Window {
	return &Window{
		id:    uuid.NewString(),
		title: title,
		guard: guard,
		set:   set,
	}
}
