package app

// LaunchInfo carries host-supplied metadata delivered with the
// finished-launching notification.
type LaunchInfo map[string]interface{}

// Observer receives lifecycle notifications from the coordinator. Veto
// handlers receive a shared prevent flag; setting it to true suppresses the
// corresponding default action. All handlers run synchronously on the loop
// goroutine, in registration order.
//
// Embed BaseObserver to pick up no-op defaults for the events you don't care
// about.
type Observer interface {
	// OnBeforeQuit runs before windows are asked to close. Set *prevent to
	// veto the quit.
	OnBeforeQuit(prevent *bool)

	// OnWillQuit runs after all windows have closed, immediately before
	// shutdown. Set *prevent to veto the quit.
	OnWillQuit(prevent *bool)

	// OnQuit is the final notification; the teardown closure runs right
	// after. Not vetoable.
	OnQuit()

	// OnWindowAllClosed fires when the last window closes outside of a quit
	// or exit sequence.
	OnWindowAllClosed()

	// OnWillFinishLaunching fires before launch setup runs.
	OnWillFinishLaunching()

	// OnFinishLaunching fires once the host is ready.
	OnFinishLaunching(info LaunchInfo)

	// OnOpenFile fires for an open-file request. Set *prevent to mark the
	// request handled.
	OnOpenFile(prevent *bool, path string)

	// OnOpenURL fires for an open-url request.
	OnOpenURL(url string)

	// OnActivate fires when the host application is activated.
	OnActivate(hasVisibleWindows bool)
}

// TabObserver is an optional capability for platforms with native tabbing.
// Observers that implement it additionally receive new-window-for-tab
// requests.
type TabObserver interface {
	OnNewWindowForTab()
}

// BaseObserver provides no-op implementations of every Observer method.
type BaseObserver struct{}

func (BaseObserver) OnBeforeQuit(prevent *bool) {}

func (BaseObserver) OnWillQuit(prevent *bool) {}

func (BaseObserver) OnQuit() {}

func (BaseObserver) OnWindowAllClosed() {}

func (BaseObserver) OnWillFinishLaunching() {}

func (BaseObserver) OnFinishLaunching(info LaunchInfo) {}

func (BaseObserver) OnOpenFile(prevent *bool, path string) {}

func (BaseObserver) OnOpenURL(url string) {}

func (BaseObserver) OnActivate(hasVisibleWindows bool) {}

// observerList is an ordered observer collection with snapshot iteration.
// Observers may add or remove entries (including themselves) from inside a
// notification without affecting the in-flight dispatch.
type observerList struct {
	items []Observer
}

// add appends an observer. Duplicate registration is the caller's problem;
// no dedup is performed.
func (l *observerList) add(o Observer) {
	l.items = append(l.items, o)
}

// remove deletes an observer by identity. No-op if absent.
func (l *observerList) remove(o Observer) {
	for i, item := range l.items {
		if item == o {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// notify invokes fn for each observer registered at the time of the call.
func (l *observerList) notify(fn func(Observer)) {
	snapshot := make([]Observer, len(l.items))
	copy(snapshot, l.items)
	for _, o := range snapshot {
		fn(o)
	}
}
