package watch

import (
	"context"
	"os"
	"sync"
	"time"
)

// DefaultInterval is the polling interval used when Config.Interval is 0.
const DefaultInterval = 250 * time.Millisecond

// Change is a detected file change.
type Change struct {
	Path string

	// Removed is set when the file no longer exists.
	Removed bool
}

// Config configures a Watcher.
type Config struct {
	// Files are the paths to watch.
	Files []string

	// Interval is the delay between polls.
	Interval time.Duration
}

// stamp identifies one version of a file.
type stamp struct {
	mod  time.Time
	size int64
}

// Watcher polls a fixed set of files.
type Watcher struct {
	config   Config
	onChange func(Change)
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	stamps   map[string]stamp
}

// NewWatcher creates a watcher for config.Files.
func NewWatcher(config Config) *Watcher {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	return &Watcher{
		config: config,
		stamps: make(map[string]stamp),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start records the current state of every file and polls until ctx is
// done or Stop is called. It returns ctx.Err() on cancellation and nil on
// Stop.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.scan()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.markStopped()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.report(w.poll())
		}
	}
}

// Stop stops a running watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

func (w *Watcher) markStopped() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
}

// IsRunning reports whether the watcher is polling.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// scan records the current stamp of every existing file.
func (w *Watcher) scan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.config.Files {
		if info, err := os.Stat(p); err == nil {
			w.stamps[p] = stamp{mod: info.ModTime(), size: info.Size()}
		}
	}
}

// poll returns the files that appeared, changed or disappeared since the
// last scan or poll.
func (w *Watcher) poll() []Change {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changes []Change
	for _, p := range w.config.Files {
		last, known := w.stamps[p]
		info, err := os.Stat(p)
		if err != nil {
			if known && os.IsNotExist(err) {
				delete(w.stamps, p)
				changes = append(changes, Change{Path: p, Removed: true})
			}
			continue
		}
		cur := stamp{mod: info.ModTime(), size: info.Size()}
		if !known || cur != last {
			w.stamps[p] = cur
			changes = append(changes, Change{Path: p})
		}
	}
	return changes
}

func (w *Watcher) report(changes []Change) {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()
	if callback == nil {
		return
	}
	for _, c := range changes {
		callback(c)
	}
}
