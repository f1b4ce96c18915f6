// Package history keeps a bounded, newest-first record of past
// predictions for recent-activity views.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"fraudwatch-client/internal/domain"
	"fraudwatch-client/internal/observability"
)

// DefaultCapacity is the number of entries retained before eviction.
const DefaultCapacity = 50

// Entry records one successful prediction. Never mutated after creation.
type Entry struct {
	ID          string                     `json:"id"`
	Timestamp   time.Time                  `json:"timestamp"`
	Transaction domain.TransactionFeatures `json:"transaction"`
	Result      domain.Prediction          `json:"result"`
}

// Ring is a bounded, insertion-ordered record of predictions, newest
// first. Once capacity is exceeded the oldest entries are evicted
// silently.
type Ring struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
}

// NewRing creates a ring. capacity <= 0 falls back to DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity}
}

// Push records a prediction, prepending a new entry and truncating to
// capacity. It returns the created entry.
func (r *Ring) Push(tx domain.TransactionFeatures, result domain.Prediction) Entry {
	entry := Entry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Transaction: tx,
		Result:      result,
	}

	r.mu.Lock()
	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
	n := len(r.entries)
	r.mu.Unlock()

	observability.UpdateHistorySize(n)
	return entry
}

// All returns a newest-first copy of the current entries.
func (r *Ring) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the current number of entries.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
