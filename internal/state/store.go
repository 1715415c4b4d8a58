package state

import (
	"fmt"
	"sync"
	"time"
)

// Transfer tracks one download.
type Transfer struct {
	Name    string
	Percent int // -1 until the size is known
	Bytes   int
	Done    bool
	Err     error
	Started time.Time
	Updated time.Time
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Title       string
	Transfers   []Transfer
	LastUpdated time.Time
	LastError   error
}

// Finished reports whether every registered transfer has ended.
func (s Snapshot) Finished() bool {
	if len(s.Transfers) == 0 {
		return false
	}
	for _, t := range s.Transfers {
		if !t.Done {
			return false
		}
	}
	return true
}

// Store coordinates concurrent updates from download goroutines.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	index    map[string]int
}

// SetTitle records what is being downloaded.
func (s *Store) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Title = title
	s.snapshot.LastUpdated = time.Now()
}

// Start registers a transfer. Starting an existing name resets it.
func (s *Store) Start(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		s.index = make(map[string]int)
	}
	now := time.Now()
	t := Transfer{Name: name, Percent: -1, Started: now, Updated: now}
	if i, ok := s.index[name]; ok {
		s.snapshot.Transfers[i] = t
	} else {
		s.index[name] = len(s.snapshot.Transfers)
		s.snapshot.Transfers = append(s.snapshot.Transfers, t)
	}
	s.snapshot.LastUpdated = now
}

// Progress records a percentage for name. Unknown names are ignored.
func (s *Store) Progress(name string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.lookup(name)
	if t == nil || t.Done {
		return
	}
	t.Percent = max(0, min(percent, 100))
	t.Updated = time.Now()
	s.snapshot.LastUpdated = t.Updated
}

// Finish marks name as ended. When err is non-nil it is also kept as the
// store's last error.
func (s *Store) Finish(name string, size int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.lookup(name)
	if t == nil {
		return
	}
	t.Done = true
	t.Bytes = size
	t.Err = err
	if err == nil {
		t.Percent = 100
	} else {
		s.snapshot.LastError = err
	}
	t.Updated = time.Now()
	s.snapshot.LastUpdated = t.Updated
}

func (s *Store) lookup(name string) *Transfer {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return &s.snapshot.Transfers[i]
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Transfers = cloneTransfers(s.snapshot.Transfers)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTransfers(items []Transfer) []Transfer {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Transfer, len(items))
	copy(dup, items)
	return dup
}
