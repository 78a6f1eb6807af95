package state

import (
	"log/slog"
	"sync"

	"github.com/picstash/picstash/internal/models"
)

// Persister writes the complete AppState tree after a transition.
type Persister interface {
	Save(models.AppState) error
}

// Container owns the live state tree. All transitions funnel through
// Apply, which serializes them behind one lock so two interleaved
// transitions can never observe or overwrite each other's intermediate
// tree. The persistence write and any write listeners run synchronously
// inside the transition's turn, in acceptance order, before the next
// transition is admitted.
type Container struct {
	mu        sync.Mutex
	cur       State
	persister Persister
	onWrite   []func()
}

// NewContainer builds a container around an initial tree. The persister
// may be nil (tests); onWrite listeners fire after every transition, in
// registration order.
func NewContainer(initial models.AppState, p Persister, onWrite ...func()) *Container {
	return &Container{
		cur:       State{App: initial.Normalize()},
		persister: p,
		onWrite:   onWrite,
	}
}

// Apply runs one pure transition against the current tree and installs
// the result. A failed persistence write is logged and absorbed; the
// in-memory tree still advances.
func (c *Container) Apply(fn func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cur = fn(c.cur)

	if c.persister != nil {
		if err := c.persister.Save(c.cur.App); err != nil {
			slog.Error("Failed to persist state", "err", err)
		}
	}
	for _, f := range c.onWrite {
		f()
	}
	return c.cur
}

// Snapshot returns the current tree. Transitions replace rather than
// mutate, so the returned value is safe to read without the lock.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// App returns the persisted slice of the current tree.
func (c *Container) App() models.AppState {
	return c.Snapshot().App
}
