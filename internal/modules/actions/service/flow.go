package service

import "sync"

// CreationFlow is the add-position flow. It is opened with the instance the new leg belongs to.
type CreationFlow interface {
	Open(instanceID string)
}

// PositionFlow keeps the state of the add-position dialog: its target and whether it is open.
type PositionFlow struct {
	mu     sync.Mutex
	target string
	open   bool
	onOpen func(instanceID string)
}

// NewPositionFlow returns a closed flow. onOpen, if set, runs every time the flow is opened.
func NewPositionFlow(onOpen func(instanceID string)) *PositionFlow {
	return &PositionFlow{onOpen: onOpen}
}

func (f *PositionFlow) Open(instanceID string) {
	f.mu.Lock()
	f.target = instanceID
	f.open = true
	cb := f.onOpen
	f.mu.Unlock()

	if cb != nil {
		cb(instanceID)
	}
}

func (f *PositionFlow) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

func (f *PositionFlow) Target() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

func (f *PositionFlow) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}
