package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hostkit/appshell/internal/ports"
)

// fakeWindowSet implements ports.WindowSet for testing. Close/destroy calls
// are recorded; completion is driven manually via the coordinator.
type fakeWindowSet struct {
	open       int
	closeAll   int
	destroyAll int
}

func (f *fakeWindowSet) IsEmpty() bool { return f.open == 0 }

func (f *fakeWindowSet) CloseAll() { f.closeAll++ }

func (f *fakeWindowSet) DestroyAll() { f.destroyAll++ }

// fakeWindow implements ports.WindowRef.
type fakeWindow struct{ id string }

func (f *fakeWindow) ID() string { return f.id }

func (f *fakeWindow) Title() string { return f.id }

// recorder tracks notifications and optionally vetoes quit checkpoints.
type recorder struct {
	BaseObserver

	events     []string
	vetoBefore bool
	vetoWill   bool
	claimFile  bool
}

func (r *recorder) OnBeforeQuit(prevent *bool) {
	r.events = append(r.events, "before-quit")
	if r.vetoBefore {
		*prevent = true
	}
}

func (r *recorder) OnWillQuit(prevent *bool) {
	r.events = append(r.events, "will-quit")
	if r.vetoWill {
		*prevent = true
	}
}

func (r *recorder) OnQuit() {
	r.events = append(r.events, "quit")
}

func (r *recorder) OnWindowAllClosed() {
	r.events = append(r.events, "window-all-closed")
}

func (r *recorder) OnWillFinishLaunching() {
	r.events = append(r.events, "will-finish-launching")
}

func (r *recorder) OnFinishLaunching(info LaunchInfo) {
	r.events = append(r.events, "finish-launching")
}

func (r *recorder) OnOpenFile(prevent *bool, path string) {
	r.events = append(r.events, "open-file:"+path)
	if r.claimFile {
		*prevent = true
	}
}

func (r *recorder) OnOpenURL(url string) {
	r.events = append(r.events, "open-url:"+url)
}

func (r *recorder) OnActivate(hasVisibleWindows bool) {
	r.events = append(r.events, "activate")
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func newTestCoordinator(ws *fakeWindowSet, loopRunning bool, exitFunc func(int)) *Coordinator {
	cfg := Config{Windows: ws, ExitFunc: exitFunc}
	if loopRunning {
		cfg.SetExitCode = func(int) bool { return true }
	}
	return NewCoordinator(cfg)
}

func TestQuit_NoWindows_ShutsDown(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	closureRuns := 0
	c.SetQuitClosure(func() { closureRuns++ })

	c.Quit()

	if got := obs.count("quit"); got != 1 {
		t.Errorf("OnQuit count = %d, want 1", got)
	}
	if closureRuns != 1 {
		t.Errorf("quit closure ran %d times, want 1", closureRuns)
	}
	if ws.closeAll != 0 {
		t.Errorf("CloseAll called %d times, want 0", ws.closeAll)
	}
}

func TestQuit_WithWindows_DefersShutdown(t *testing.T) {
	ws := &fakeWindowSet{open: 2}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	closureRuns := 0
	c.SetQuitClosure(func() { closureRuns++ })

	c.Quit()

	if ws.closeAll != 1 {
		t.Fatalf("CloseAll called %d times, want 1", ws.closeAll)
	}
	if closureRuns != 0 {
		t.Fatalf("closure ran before windows closed")
	}

	// Last window reports closed.
	ws.open = 0
	c.OnWindowAllClosed()

	if got := obs.count("will-quit"); got != 1 {
		t.Errorf("OnWillQuit count = %d, want 1", got)
	}
	if got := obs.count("quit"); got != 1 {
		t.Errorf("OnQuit count = %d, want 1", got)
	}
	if closureRuns != 1 {
		t.Errorf("closure ran %d times, want 1", closureRuns)
	}
}

func TestQuit_WhileQuitting_IsNoop(t *testing.T) {
	ws := &fakeWindowSet{open: 1}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	c.Quit()
	c.Quit()

	if got := obs.count("before-quit"); got != 1 {
		t.Errorf("before-quit rounds = %d, want 1", got)
	}
	if ws.closeAll != 1 {
		t.Errorf("CloseAll called %d times, want 1", ws.closeAll)
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	closureRuns := 0
	c.SetQuitClosure(func() { closureRuns++ })

	c.Shutdown()
	c.Shutdown()
	c.Shutdown()

	if got := obs.count("quit"); got != 1 {
		t.Errorf("OnQuit count = %d, want 1", got)
	}
	if closureRuns != 1 {
		t.Errorf("closure ran %d times, want 1", closureRuns)
	}
}

func TestBeforeQuit_VetoOrdering(t *testing.T) {
	tests := []struct {
		name   string
		vetoes []bool
		want   bool // quit proceeds
	}{
		{"no vetoes", []bool{false, false, false}, true},
		{"first vetoes", []bool{true, false, false}, false},
		{"middle vetoes", []bool{false, true, false}, false},
		{"last vetoes", []bool{false, false, true}, false},
		{"all veto", []bool{true, true, true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := &fakeWindowSet{open: 1}
			c := newTestCoordinator(ws, true, nil)

			observers := make([]*recorder, len(tt.vetoes))
			for i, v := range tt.vetoes {
				observers[i] = &recorder{vetoBefore: v}
				c.AddObserver(observers[i])
			}

			c.Quit()

			// All observers are notified regardless of earlier vetoes.
			for i, obs := range observers {
				if got := obs.count("before-quit"); got != 1 {
					t.Errorf("observer %d notified %d times, want 1", i, got)
				}
			}

			proceeded := ws.closeAll == 1
			if proceeded != tt.want {
				t.Errorf("quit proceeded = %v, want %v", proceeded, tt.want)
			}
		})
	}
}

func TestWillQuit_VetoCancelsQuit(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{vetoWill: true}
	c.AddObserver(obs)

	closureRuns := 0
	c.SetQuitClosure(func() { closureRuns++ })

	c.Quit()

	if closureRuns != 0 {
		t.Fatalf("closure ran despite will-quit veto")
	}
	if got := obs.count("quit"); got != 0 {
		t.Fatalf("OnQuit fired despite veto")
	}

	// Quit was cancelled, so a later attempt runs the full sequence again.
	obs.vetoWill = false
	c.Quit()

	if got := obs.count("before-quit"); got != 2 {
		t.Errorf("before-quit rounds = %d, want 2", got)
	}
	if closureRuns != 1 {
		t.Errorf("closure ran %d times, want 1", closureRuns)
	}
}

func TestExit_LoopNotRunning_ExitsImmediately(t *testing.T) {
	ws := &fakeWindowSet{open: 3}
	exitCode := -1
	c := newTestCoordinator(ws, false, func(code int) { exitCode = code })

	obs := &recorder{}
	c.AddObserver(obs)

	c.Exit(7)

	if exitCode != 7 {
		t.Errorf("exit code = %d, want 7", exitCode)
	}
	if len(obs.events) != 0 {
		t.Errorf("observers notified on pre-loop exit: %v", obs.events)
	}
	if ws.destroyAll != 0 {
		t.Errorf("DestroyAll called on pre-loop exit")
	}
}

func TestExit_NoWindows_ShutsDownImmediately(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	closureRuns := 0
	c.SetQuitClosure(func() { closureRuns++ })

	c.Exit(0)

	if got := obs.count("quit"); got != 1 {
		t.Errorf("OnQuit count = %d, want 1", got)
	}
	if closureRuns != 1 {
		t.Errorf("closure ran %d times, want 1", closureRuns)
	}
}

func TestExit_BypassesVetoes(t *testing.T) {
	ws := &fakeWindowSet{open: 1}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{vetoBefore: true, vetoWill: true}
	c.AddObserver(obs)

	c.Exit(0)

	if ws.destroyAll != 1 {
		t.Fatalf("DestroyAll called %d times, want 1", ws.destroyAll)
	}
	if got := obs.count("before-quit"); got != 0 {
		t.Errorf("before-quit ran on exit")
	}

	ws.open = 0
	c.OnWindowAllClosed()

	// Exit skips the will-quit confirmation entirely.
	if got := obs.count("will-quit"); got != 0 {
		t.Errorf("will-quit ran on exit")
	}
	if got := obs.count("quit"); got != 1 {
		t.Errorf("OnQuit count = %d, want 1", got)
	}
}

func TestExit_PrecedenceOverCancelledQuit(t *testing.T) {
	ws := &fakeWindowSet{open: 2}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	c.Exit(0)

	// A stray cancellation clears quitting, but exiting survives.
	c.OnWindowCloseCancelled(&fakeWindow{id: "w1"})

	ws.open = 0
	c.OnWindowAllClosed()

	if got := obs.count("quit"); got != 1 {
		t.Errorf("OnQuit count = %d, want 1; exit must win over cancellation", got)
	}
}

func TestCancellation_FallsThroughToWindowAllClosed(t *testing.T) {
	ws := &fakeWindowSet{open: 1}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	closureRuns := 0
	c.SetQuitClosure(func() { closureRuns++ })

	c.Quit()
	c.OnWindowCloseCancelled(&fakeWindow{id: "w1"})

	// The window closes anyway later; the quit was already cancelled, so
	// this is a plain idle notification, not a shutdown confirmation.
	ws.open = 0
	c.OnWindowAllClosed()

	if got := obs.count("will-quit"); got != 0 {
		t.Errorf("will-quit ran after cancellation")
	}
	if got := obs.count("window-all-closed"); got != 1 {
		t.Errorf("window-all-closed count = %d, want 1", got)
	}
	if closureRuns != 0 {
		t.Errorf("closure ran after cancelled quit")
	}
}

func TestSetQuitClosure_AfterShutdown_RunsSynchronously(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	c.Shutdown()

	ran := false
	c.SetQuitClosure(func() { ran = true })

	if !ran {
		t.Error("closure supplied after shutdown was not run synchronously")
	}
}

func TestWhenReady_BeforeLaunch_Pends(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	handle := c.WhenReady()

	select {
	case <-handle:
		t.Fatal("handle resolved before launch finished")
	default:
	}

	c.DidFinishLaunching(LaunchInfo{})

	select {
	case <-handle:
	default:
		t.Fatal("handle did not resolve after launch")
	}
}

func TestWhenReady_AfterLaunch_ResolvesImmediately(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	c.DidFinishLaunching(LaunchInfo{})

	select {
	case <-c.WhenReady():
	default:
		t.Fatal("handle taken after launch did not resolve immediately")
	}
	if !c.IsReady() {
		t.Error("IsReady() = false after launch")
	}
}

func TestDidFinishLaunching_CreatesUserDataDirAndNotifies(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	ws := &fakeWindowSet{}
	c := NewCoordinator(Config{
		Windows:     ws,
		SetExitCode: func(int) bool { return true },
		UserDataDir: dir,
	})

	obs := &recorder{}
	c.AddObserver(obs)

	c.WillFinishLaunching()
	c.DidFinishLaunching(LaunchInfo{"name": "test"})

	if got := obs.count("will-finish-launching"); got != 1 {
		t.Errorf("will-finish-launching count = %d, want 1", got)
	}
	if got := obs.count("finish-launching"); got != 1 {
		t.Errorf("finish-launching count = %d, want 1", got)
	}
	if !dirExists(dir) {
		t.Errorf("user data dir %s was not created", dir)
	}
}

func TestOpenFile_PreventDefault(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	unclaimed := &recorder{}
	claimed := &recorder{claimFile: true}
	c.AddObserver(unclaimed)
	c.AddObserver(claimed)

	if !c.OpenFile("/tmp/doc.txt") {
		t.Error("OpenFile = false, want true when an observer claims it")
	}
	if got := unclaimed.count("open-file:/tmp/doc.txt"); got != 1 {
		t.Errorf("first observer notified %d times, want 1", got)
	}

	c.RemoveObserver(claimed)
	if c.OpenFile("/tmp/doc.txt") {
		t.Error("OpenFile = true with no claiming observer")
	}
}

func TestOpenURLAndActivate_PassThrough(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	obs := &recorder{}
	c.AddObserver(obs)

	c.OpenURL("https://example.com")
	c.Activate(true)

	if got := obs.count("open-url:https://example.com"); got != 1 {
		t.Errorf("open-url count = %d, want 1", got)
	}
	if got := obs.count("activate"); got != 1 {
		t.Errorf("activate count = %d, want 1", got)
	}
}

// tabRecorder implements the optional TabObserver capability.
type tabRecorder struct {
	recorder
	tabs int
}

func (r *tabRecorder) OnNewWindowForTab() { r.tabs++ }

func TestNewWindowForTab_OnlyReachesCapableObservers(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	plain := &recorder{}
	tabbed := &tabRecorder{}
	c.AddObserver(plain)
	c.AddObserver(tabbed)

	c.NewWindowForTab()

	if tabbed.tabs != 1 {
		t.Errorf("tab observer notified %d times, want 1", tabbed.tabs)
	}
}

func TestNameAndVersion(t *testing.T) {
	ws := &fakeWindowSet{}
	c := NewCoordinator(Config{Windows: ws, Name: "studio", Version: "2.1.0"})

	if got := c.Name(); got != "studio" {
		t.Errorf("Name() = %q, want studio", got)
	}
	if got := c.Version(); got != "2.1.0" {
		t.Errorf("Version() = %q, want 2.1.0", got)
	}

	c.SetName("studio-beta")
	c.SetVersion("2.2.0")
	if got := c.Name(); got != "studio-beta" {
		t.Errorf("Name() = %q after SetName, want studio-beta", got)
	}
	if got := c.Version(); got != "2.2.0" {
		t.Errorf("Version() = %q after SetVersion, want 2.2.0", got)
	}

	// Fallbacks never return empty strings.
	d := NewCoordinator(Config{Windows: ws})
	if d.Name() == "" {
		t.Error("fallback Name() is empty")
	}
	if d.Version() == "" {
		t.Error("fallback Version() is empty")
	}
}

func TestBadgeCount(t *testing.T) {
	ws := &fakeWindowSet{}
	c := newTestCoordinator(ws, true, nil)

	if got := c.BadgeCount(); got != 0 {
		t.Errorf("initial BadgeCount() = %d, want 0", got)
	}
	c.SetBadgeCount(4)
	if got := c.BadgeCount(); got != 4 {
		t.Errorf("BadgeCount() = %d, want 4", got)
	}
}

var _ ports.WindowSet = (*fakeWindowSet)(nil)

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
