// Package confirm implements the two-step confirmation protocol used before destructive actions:
// Broker.Request yields a Pending decision, a prompt surface resolves it with Confirm or Decline,
// and the caller reacts to the resolution.
package confirm

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pending is one open question. It resolves exactly once.
type Pending struct {
	ID        string
	Prompt    string
	CreatedAt time.Time

	once     sync.Once
	done     chan struct{}
	accepted bool
	release  func(id string)
}

func (p *Pending) Confirm() { p.resolve(true) }
func (p *Pending) Decline() { p.resolve(false) }

func (p *Pending) resolve(accepted bool) {
	p.once.Do(func() {
		p.accepted = accepted
		close(p.done)
		if p.release != nil {
			p.release(p.ID)
		}
	})
}

// Done is closed once the decision is made.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Accepted reports the decision; false until resolved.
func (p *Pending) Accepted() bool {
	select {
	case <-p.done:
		return p.accepted
	default:
		return false
	}
}

// Broker tracks open decisions so asynchronous prompt surfaces can resolve them by id.
type Broker struct {
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]*Pending
}

// NewBroker returns a broker whose decisions decline on their own after timeout (0 = never).
func NewBroker(timeout time.Duration) *Broker {
	return &Broker{
		timeout: timeout,
		pending: make(map[string]*Pending),
	}
}

func (b *Broker) Request(prompt string) *Pending {
	p := &Pending{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		CreatedAt: time.Now(),
		done:      make(chan struct{}),
		release:   b.forget,
	}
	b.mu.Lock()
	b.pending[p.ID] = p
	b.mu.Unlock()
	return p
}

// Resolve settles the decision with the given id. It reports false for unknown or already settled ids.
func (b *Broker) Resolve(id string, accepted bool) bool {
	b.mu.Lock()
	p, ok := b.pending[id]
	b.mu.Unlock()
	if !ok {
		return false
	}
	p.resolve(accepted)
	return true
}

// Wait blocks until p is settled. Timeout and ctx cancellation count as a decline.
func (b *Broker) Wait(ctx context.Context, p *Pending) bool {
	var timeout <-chan time.Time
	if b.timeout > 0 {
		t := time.NewTimer(b.timeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case <-p.Done():
	case <-timeout:
		p.Decline()
	case <-ctx.Done():
		p.Decline()
	}
	return p.Accepted()
}

// Open lists unsettled decisions, oldest first.
func (b *Broker) Open() []*Pending {
	b.mu.Lock()
	out := make([]*Pending, 0, len(b.pending))
	for _, p := range b.pending {
		out = append(out, p)
	}
	b.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (b *Broker) forget(id string) {
	b.mu.Lock()
	delete(b.pending, id)
	b.mu.Unlock()
}
