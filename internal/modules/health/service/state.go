package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	wsConnected  atomic.Bool
	lastTickUnix atomic.Int64 // unix seconds
	instances    atomic.Int64
	loadErr      atomic.Pointer[string]
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) {
	s.ready.Store(v)
	if v {
		s.loadErr.Store(nil)
	}
}
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetWSConnected(v bool) { s.wsConnected.Store(v) }
func (s *State) WSConnected() bool     { return s.wsConnected.Load() }

func (s *State) TouchTick(t time.Time) { s.lastTickUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time {
	u := s.lastTickUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

// SetInstances records the size of the last loaded instance collection.
func (s *State) SetInstances(n int) { s.instances.Store(int64(n)) }
func (s *State) Instances() int     { return int(s.instances.Load()) }

// SetLoadFailed records why the startup instance load gave up. A later successful load clears it.
func (s *State) SetLoadFailed(err error) {
	msg := err.Error()
	s.loadErr.Store(&msg)
}

// LoadError is the startup load failure, empty while loading or once loaded.
func (s *State) LoadError() string {
	if p := s.loadErr.Load(); p != nil {
		return *p
	}
	return ""
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
