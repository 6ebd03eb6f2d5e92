package ports

// WindowRef identifies a window managed by the host. The coordinator never
// inspects window internals; it only passes references through to observers.
type WindowRef interface {
	// ID returns a stable identifier for the window.
	ID() string

	// Title returns the window title, if any.
	Title() string
}

// WindowSet is the collaborator that owns the host's windows.
//
// CloseAll and DestroyAll are fire-and-forget: they return immediately and
// completion arrives later through the coordinator's OnWindowAllClosed
// notification. A window may refuse a cooperative close, which surfaces as
// OnWindowCloseCancelled instead.
type WindowSet interface {
	// IsEmpty reports whether any windows remain open.
	IsEmpty() bool

	// CloseAll asks every window to close cooperatively. Individual windows
	// may refuse.
	CloseAll()

	// DestroyAll tears down every window unconditionally.
	DestroyAll()
}
