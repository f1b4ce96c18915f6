// Package poller runs supervised recurring read operations against the
// backend: health checks and statistics refresh on fixed intervals.
//
// Each target is one goroutine driving one ticker, so ticks can never
// overlap, and each Handle guarantees complete cancellation on Stop —
// repeated mount/unmount of an observer cannot accumulate timers.
package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"fraudwatch-client/internal/observability"
)

// Operation is one recurring read. The context is cancelled when the
// owning Poller closes.
type Operation func(ctx context.Context) (interface{}, error)

// Poller supervises a set of recurring tasks and shuts them down together.
type Poller struct {
	logger *log.Logger

	mu      sync.Mutex
	closed  bool
	handles []*Handle

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a poller. logger may be nil.
func New(logger *log.Logger) *Poller {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{logger: logger, ctx: ctx, cancel: cancel}
}

// Handle cancels one recurring task. Stop is idempotent: after the first
// call returns, no further tick starts; an in-flight tick still delivers
// its result.
type Handle struct {
	name string
	done chan struct{}
	once sync.Once
}

// Stop cancels the task.
func (h *Handle) Stop() {
	h.once.Do(func() { close(h.done) })
}

// Start begins polling op every interval. The first invocation happens
// one full interval after Start; stopping earlier means zero invocations.
// onResult and onError may be nil.
func (p *Poller) Start(name string, interval time.Duration, op Operation, onResult func(interface{}), onError func(error)) *Handle {
	h := &Handle{name: name, done: make(chan struct{})}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		h.Stop()
		return h
	}
	p.handles = append(p.handles, h)
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(h, interval, op, onResult, onError)
	return h
}

func (p *Poller) run(h *Handle, interval time.Duration, op Operation, onResult func(interface{}), onError func(error)) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-p.ctx.Done():
			return
		case <-ticker.C:
		}

		// The ticker may have fired concurrently with Stop; re-check so
		// no tick starts after cancellation.
		select {
		case <-h.done:
			return
		case <-p.ctx.Done():
			return
		default:
		}

		result, err := op(p.ctx)
		observability.RecordPollTick(h.name, err)
		if err != nil {
			p.logger.Printf("poll %s: %v", h.name, err)
			if onError != nil {
				onError(err)
			}
			continue
		}
		if onResult != nil {
			onResult(result)
		}
	}
}

// Close stops every task and waits for in-flight ticks to finish.
func (p *Poller) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	handles := p.handles
	p.mu.Unlock()

	for _, h := range handles {
		h.Stop()
	}
	p.cancel()
	p.wg.Wait()
}
