package state

import (
	"sync"
	"time"

	"github.com/five82/moodline/internal/sentiment"
)

// Status is the client's belief about whether the service is reachable.
type Status int

const (
	StatusChecking Status = iota
	StatusConnected
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	default:
		return "checking"
	}
}

// Snapshot represents the latest state available to the UI.
type Snapshot struct {
	Input        string
	Results      []sentiment.Result
	Loading      bool
	Status       Status
	ErrorMessage string
	UpdatedAt    time.Time
	Version      uint64
}

// CanSubmit reports whether an analysis of the current input would be accepted.
func (s Snapshot) CanSubmit() bool {
	if s.Loading || s.Status == StatusError {
		return false
	}
	return len(sentiment.SplitConversation(s.Input)) > 0
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	subs     map[int]chan Snapshot
	nextSub  int
}

// SetInput records the current conversation text.
func (s *Store) SetInput(text string) {
	s.mutate(func(snap *Snapshot) {
		snap.Input = text
	})
}

// SetHealth applies a health check outcome. Results are left untouched.
func (s *Store) SetHealth(ok bool, message string) {
	s.mutate(func(snap *Snapshot) {
		if ok {
			snap.Status = StatusConnected
			snap.ErrorMessage = ""
			return
		}
		snap.Status = StatusError
		snap.ErrorMessage = message
	})
}

// BeginAnalysis marks a request as in flight, clearing previous results and
// any error message. It returns false, changing nothing, when a request is
// already in flight or the service is known to be in error.
func (s *Store) BeginAnalysis() bool {
	accepted := false
	s.mutateIf(func(snap *Snapshot) bool {
		if snap.Loading || snap.Status == StatusError {
			return false
		}
		snap.Loading = true
		snap.Results = nil
		snap.ErrorMessage = ""
		accepted = true
		return true
	})
	return accepted
}

// FinishAnalysis stores the results of a successful request. A successful
// analysis is itself evidence of connectivity.
func (s *Store) FinishAnalysis(results []sentiment.Result) {
	s.mutate(func(snap *Snapshot) {
		snap.Results = cloneResults(results)
		snap.Loading = false
		snap.Status = StatusConnected
		snap.ErrorMessage = ""
	})
}

// FailAnalysis records a failed request.
func (s *Store) FailAnalysis(message string) {
	s.mutate(func(snap *Snapshot) {
		snap.Results = nil
		snap.Loading = false
		snap.Status = StatusError
		snap.ErrorMessage = message
	})
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Subscribe registers an observer. The returned channel immediately holds the
// current snapshot and afterwards the latest one after each change. The cancel
// func unregisters the observer and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan Snapshot)
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	ch <- s.copyLocked()
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) mutate(fn func(*Snapshot)) {
	s.mutateIf(func(snap *Snapshot) bool {
		fn(snap)
		return true
	})
}

func (s *Store) mutateIf(fn func(*Snapshot) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.snapshot) {
		return
	}
	s.snapshot.Version++
	s.snapshot.UpdatedAt = time.Now()

	for _, ch := range s.subs {
		snap := s.copyLocked()
		// Drop an unread value so the newest snapshot always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) copyLocked() Snapshot {
	snap := s.snapshot
	snap.Results = cloneResults(s.snapshot.Results)
	return snap
}

func cloneResults(items []sentiment.Result) []sentiment.Result {
	if len(items) == 0 {
		return nil
	}
	dup := make([]sentiment.Result, len(items))
	copy(dup, items)
	return dup
}
