package notify

import (
	"context"
	"sync"
	"trade_desk/internal/confirm"
)

// Auto answers every prompt with a fixed decision and records what it was asked and told.
type Auto struct {
	accept bool

	mu        sync.Mutex
	prompts   []string
	successes []string
	failures  []string
}

func NewAuto(accept bool) *Auto { return &Auto{accept: accept} }

func (a *Auto) Prompt(_ context.Context, p *confirm.Pending) error {
	a.mu.Lock()
	a.prompts = append(a.prompts, p.Prompt)
	a.mu.Unlock()
	if a.accept {
		p.Confirm()
	} else {
		p.Decline()
	}
	return nil
}

func (a *Auto) Success(msg string) {
	a.mu.Lock()
	a.successes = append(a.successes, msg)
	a.mu.Unlock()
}

func (a *Auto) Failure(msg string) {
	a.mu.Lock()
	a.failures = append(a.failures, msg)
	a.mu.Unlock()
}

func (a *Auto) Prompts() []string   { return a.snapshot(&a.prompts) }
func (a *Auto) Successes() []string { return a.snapshot(&a.successes) }
func (a *Auto) Failures() []string  { return a.snapshot(&a.failures) }

func (a *Auto) snapshot(src *[]string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), (*src)...)
}
