// Package autosave derives the cosmetic "saved" indicator from write
// events. The flag stays on for a fixed window after the most recent
// write and every new write restarts the window.
package autosave

import (
	"sync"
	"time"
)

// DefaultWindow is how long the indicator stays on after a write.
const DefaultWindow = 2 * time.Second

// Indicator is the debounced flag.
type Indicator struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	gen    uint64
	active bool
}

// New creates an indicator with the given window; zero means the default.
func New(window time.Duration) *Indicator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Indicator{window: window}
}

// Touch records a write: the flag turns on and the off-timer restarts.
func (i *Indicator) Touch() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.active = true
	i.gen++
	if i.timer != nil {
		i.timer.Stop()
	}
	// A stopped timer may already have fired and be waiting on the lock;
	// the generation check keeps a stale callback from clearing the flag.
	gen := i.gen
	i.timer = time.AfterFunc(i.window, func() {
		i.mu.Lock()
		if i.gen == gen {
			i.active = false
		}
		i.mu.Unlock()
	})
}

// Active reports whether a write happened within the window.
func (i *Indicator) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active
}

// Stop cancels the pending timer and clears the flag.
func (i *Indicator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.active = false
}
