// Package dirtyguard provides an unsaved-work guard for appshell. While
// marker files matching the configured pattern exist in the watched
// directory, the guard vetoes quit at both checkpoints. Exit is not
// vetoable, so it bypasses the guard.
package dirtyguard

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/hostkit/appshell"
	"github.com/hostkit/appshell/pkg/log"
)

// Config holds configuration options for the dirty guard plugin.
type Config struct {
	// Dir is the directory watched for marker files.
	Dir string

	// Pattern is the glob matched against marker file names.
	// Default: "*.dirty"
	Pattern string
}

// DefaultConfig returns a Config with sensible defaults. Dir must still be
// set by the caller.
func DefaultConfig() Config {
	return Config{Pattern: "*.dirty"}
}

// Guard vetoes quit while unsaved-work markers exist. Veto rounds scan the
// directory directly; the fsnotify watcher only maintains a cached view for
// DirtyFiles and logging.
type Guard struct {
	appshell.BaseObserver

	dir     string
	pattern string
	logger  log.Logger

	mu      sync.Mutex
	dirty   map[string]struct{}
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// New creates a new dirty guard plugin with the given configuration.
func New(cfg Config) *Guard {
	if cfg.Pattern == "" {
		cfg.Pattern = "*.dirty"
	}
	return &Guard{
		dir:     cfg.Dir,
		pattern: cfg.Pattern,
		dirty:   make(map[string]struct{}),
		logger:  log.NewNoopLogger(),
	}
}

// Name returns the plugin identifier.
func (g *Guard) Name() string {
	return "dirtyguard"
}

// Initialize validates the configuration and stores the host logger.
func (g *Guard) Initialize(cfg appshell.PluginConfig) error {
	if g.dir == "" {
		return fmt.Errorf("dirtyguard: watch directory not configured")
	}
	if cfg.Logger != nil {
		g.logger = cfg.Logger
	}
	return nil
}

// OnFinishLaunching starts the marker watcher.
func (g *Guard) OnFinishLaunching(info appshell.LaunchInfo) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		g.logger.Error("dirtyguard: failed to create watcher", log.Err(err))
		return
	}
	if err := watcher.Add(g.dir); err != nil {
		g.logger.Error("dirtyguard: failed to watch directory",
			log.String("dir", g.dir), log.Err(err))
		watcher.Close()
		return
	}

	g.watcher = watcher
	g.refreshCache()

	g.wg.Add(1)
	go g.watchLoop(watcher)
}

// OnQuit stops the marker watcher.
func (g *Guard) OnQuit() {
	if g.watcher != nil {
		g.watcher.Close()
		g.wg.Wait()
		g.watcher = nil
	}
}

// OnBeforeQuit vetoes the quit when markers exist.
func (g *Guard) OnBeforeQuit(prevent *bool) {
	g.veto(prevent)
}

// OnWillQuit vetoes the quit at the confirmation checkpoint when markers
// appeared while windows were closing.
func (g *Guard) OnWillQuit(prevent *bool) {
	g.veto(prevent)
}

// DirtyFiles returns the cached marker paths in no particular order.
// Intended for status reporting.
func (g *Guard) DirtyFiles() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	files := make([]string, 0, len(g.dirty))
	for f := range g.dirty {
		files = append(files, f)
	}
	return files
}

// veto sets *prevent when a fresh scan finds markers. The scan, not the
// cache, is authoritative: the watcher may lag behind the filesystem.
func (g *Guard) veto(prevent *bool) {
	matches := g.scan()
	if len(matches) == 0 {
		return
	}
	*prevent = true
	g.logger.Warn("dirtyguard: quit vetoed, unsaved work present",
		log.Int("markers", len(matches)))
}

// scan globs the watched directory for markers.
func (g *Guard) scan() []string {
	matches, err := filepath.Glob(filepath.Join(g.dir, g.pattern))
	if err != nil {
		g.logger.Error("dirtyguard: scan failed", log.Err(err))
		return nil
	}
	return matches
}

// refreshCache replaces the cached marker set with a fresh scan.
func (g *Guard) refreshCache() {
	matches := g.scan()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dirty = make(map[string]struct{}, len(matches))
	for _, m := range matches {
		g.dirty[m] = struct{}{}
	}
}

// watchLoop tracks marker creation and removal until the watcher closes.
func (g *Guard) watchLoop(watcher *fsnotify.Watcher) {
	defer g.wg.Done()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			matched, err := filepath.Match(g.pattern, filepath.Base(event.Name))
			if err != nil || !matched {
				continue
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				g.mu.Lock()
				g.dirty[event.Name] = struct{}{}
				g.mu.Unlock()
				g.logger.Debug("dirtyguard: marker appeared", log.String("file", event.Name))
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				g.mu.Lock()
				delete(g.dirty, event.Name)
				g.mu.Unlock()
				g.logger.Debug("dirtyguard: marker cleared", log.String("file", event.Name))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			g.logger.Error("dirtyguard: watcher error", log.Err(err))
		}
	}
}

// Ensure Guard implements appshell.Plugin.
var _ appshell.Plugin = (*Guard)(nil)
