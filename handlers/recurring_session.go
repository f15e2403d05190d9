package handlers

import "sync"

// recurringRemovals remembers, per quote, that the user deleted the
// cumulative total line during this server session. The line is auto-created
// again on the next chapter add only when the quote is not in this set.
// Deliberately in-memory: a restart re-enables the auto-create.
type recurringRemovals struct {
	mu      sync.Mutex
	removed map[string]bool
}

var removedRecurring = &recurringRemovals{removed: make(map[string]bool)}

func (r *recurringRemovals) Mark(quoteID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed[quoteID] = true
}

func (r *recurringRemovals) Removed(quoteID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removed[quoteID]
}

func (r *recurringRemovals) Reset(quoteID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.removed, quoteID)
}
