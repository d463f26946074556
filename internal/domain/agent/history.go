package agent

import "sync"

const defaultHistoryLimit = 100

// History is the in-memory record of processed exchanges. It is append-only
// up to a size limit (oldest entries fall off) with an explicit Clear. It is
// not persisted.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Exchange
}

// NewHistory creates a history buffer; limit <= 0 falls back to the default.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append records an exchange, evicting the oldest past the limit.
func (h *History) Append(e Exchange) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// List returns a copy of the recorded exchanges, oldest first.
func (h *History) List() []Exchange {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Exchange, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear drops all recorded exchanges.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Len returns the number of recorded exchanges.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
