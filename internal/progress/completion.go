package progress

import (
	"slices"
	"sync"

	"github.com/abhisek/stocklearn/internal/lesson"
)

// CompletionSet is the set of lessons the learner has completed. It only
// grows during a run; Reset exists for an explicit learner-state reset.
type CompletionSet struct {
	mu  sync.RWMutex
	ids map[lesson.ID]struct{}
}

// NewCompletionSet returns an empty set.
func NewCompletionSet() *CompletionSet {
	return &CompletionSet{ids: make(map[lesson.ID]struct{})}
}

// Add inserts id and reports whether it was newly added.
func (c *CompletionSet) Add(id lesson.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.ids[id]; ok {
		return false
	}
	c.ids[id] = struct{}{}
	return true
}

// Has reports whether id is complete.
func (c *CompletionSet) Has(id lesson.ID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ids[id]
	return ok
}

// Len returns the number of completed lessons.
func (c *CompletionSet) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

// IDs returns the completed lesson IDs in ascending order.
func (c *CompletionSet) IDs() []lesson.ID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]lesson.ID, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Reset empties the set.
func (c *CompletionSet) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.ids)
}
