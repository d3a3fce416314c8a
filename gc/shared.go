// ABOUTME: Mutex-guarded collector for embedders with several goroutines
// ABOUTME: One lock serialises tracking, roots, pins and collection

package gc

import "sync"

// Shared serialises every operation on a Collector behind one mutex.
// A cycle holds the lock for its whole duration.
type Shared struct {
	mu sync.Mutex
	c  *Collector
}

// NewShared wraps c. The caller must stop using c directly.
func NewShared(c *Collector) *Shared {
	return &Shared{c: c}
}

// Do runs fn with exclusive access to the collector
func (s *Shared) Do(fn func(c *Collector)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.c)
}

// Track registers obj under the lock
func (s *Shared) Track(obj Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Track(obj)
}

// AddRoot adds obj to the root set under the lock
func (s *Shared) AddRoot(obj Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.AddRoot(obj)
}

// RemoveRoot drops obj from the root set under the lock
func (s *Shared) RemoveRoot(obj Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.RemoveRoot(obj)
}

// Pin adds one pin to obj under the lock
func (s *Shared) Pin(obj Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Pin(obj)
}

// Unpin releases one pin on obj under the lock
func (s *Shared) Unpin(obj Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Unpin(obj)
}

// Collect runs a full cycle, holding the lock until it finishes
func (s *Shared) Collect(verbose bool) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Collect(verbose)
}

// Live returns the number of tracked objects
func (s *Shared) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Live()
}

// Close shuts the collector down under the lock
func (s *Shared) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Close()
}
