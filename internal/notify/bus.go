// Package notify provides the process-wide session-expired broadcast.
//
// It is an explicit observer mechanism: subscribers and their lifetimes
// are visible at the call site, unlike an ambient event bus.
package notify

import "sync"

// Bus fans a fire-and-forget notification out to all current subscribers.
// Publish is synchronous; handlers must not block.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func())}
}

// Subscribe registers fn and returns an unsubscribe function.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish notifies every current subscriber once.
func (b *Bus) Publish() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	// Invoke outside the lock so a handler may unsubscribe itself.
	for _, fn := range fns {
		fn()
	}
}
