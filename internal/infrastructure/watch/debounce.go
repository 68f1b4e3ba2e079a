// Package watch recomputes schedule metrics when a project file changes on
// disk, with debounce support for editors that write in bursts.
package watch

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period used when no window is configured. It
// covers the write bursts of editors that save via truncate-then-write.
const DefaultWindow = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation.
type Debouncer struct {
	window   time.Duration
	callback func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer that fires callback once the window
// elapses with no further triggers. A window of zero or less selects
// DefaultWindow.
func NewDebouncer(window time.Duration, callback func()) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window, callback: callback}
}

// Trigger resets the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.callback)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
