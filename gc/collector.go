// ABOUTME: Collector orchestrating mark and sweep over the tracked heap
// ABOUTME: Owns the heap registry, root set and pin table for one embedder

package gc

import (
	"fmt"
	"time"

	"github.com/tliron/commonlog"
)

// Collector is an explicit collection context. Create one with New and
// shut it down with Close. It is not safe for concurrent use.
type Collector struct {
	heap  *heap
	roots rootSet
	pins  pinTable

	log         commonlog.Logger
	verbose     bool
	workListCap int
	recorder    Recorder

	cycles uint64
	last   *Stats
	closed bool
}

// New creates an empty collector
func New(opts ...Option) *Collector {
	c := &Collector{
		heap:        newHeap(),
		roots:       make(rootSet),
		pins:        make(pinTable),
		log:         commonlog.GetLogger("marksweep.gc"),
		workListCap: DefaultWorkListCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Track registers obj with the collector, which then owns its lifetime.
// Registering an object twice is an error.
func (c *Collector) Track(obj Object) error {
	if c.closed {
		return ErrClosed
	}
	return c.heap.register(c, obj)
}

// MustTrack tracks obj and returns it, panicking on misuse
func MustTrack[T Object](c *Collector, obj T) T {
	if err := c.Track(obj); err != nil {
		panic(err)
	}
	return obj
}

// owned returns obj's header if this collector tracks it
func (c *Collector) owned(obj Object) (*Header, error) {
	h := headerOf(obj)
	if h == nil {
		return nil, ErrNilObject
	}
	if h.owner != c || !c.heap.holds(h) {
		return nil, fmt.Errorf("object %d: %w", h.id, ErrNotTracked)
	}
	return h, nil
}

// AddRoot makes obj permanently reachable until RemoveRoot.
// Adding the same root twice has no further effect.
func (c *Collector) AddRoot(obj Object) error {
	h, err := c.owned(obj)
	if err != nil {
		return err
	}
	c.roots.add(h.id, obj)
	return nil
}

// RemoveRoot drops obj from the root set. Removing a non-root is a no-op.
func (c *Collector) RemoveRoot(obj Object) {
	if h, err := c.owned(obj); err == nil {
		c.roots.remove(h.id)
	}
}

// IsRoot reports whether obj is in the root set
func (c *Collector) IsRoot(obj Object) bool {
	h, err := c.owned(obj)
	return err == nil && c.roots.contains(h.id)
}

// Pin protects obj from collection until a matching Unpin
func (c *Collector) Pin(obj Object) error {
	h, err := c.owned(obj)
	if err != nil {
		return err
	}
	c.pins.pin(h.id, obj)
	return nil
}

// Unpin releases one pin on obj. It returns ErrNotPinned if obj has no
// outstanding pins.
func (c *Collector) Unpin(obj Object) error {
	h := headerOf(obj)
	if h == nil {
		return ErrNilObject
	}
	if h.owner != c {
		return fmt.Errorf("unpin object %d: %w", h.id, ErrNotPinned)
	}
	if !c.heap.holds(h) {
		return fmt.Errorf("unpin object %d: %w", h.id, ErrNotTracked)
	}
	_, err := c.pins.unpin(h.id)
	return err
}

// MustUnpin is Unpin for callers that treat a mismatch as fatal
func (c *Collector) MustUnpin(obj Object) {
	if err := c.Unpin(obj); err != nil {
		panic(err)
	}
}

// PinCount returns the outstanding pins on obj
func (c *Collector) PinCount(obj Object) int {
	h, err := c.owned(obj)
	if err != nil {
		return 0
	}
	return int(c.pins.count(h.id))
}

// Live returns the number of tracked objects
func (c *Collector) Live() int { return c.heap.len() }

// Roots returns the size of the root set
func (c *Collector) Roots() int { return len(c.roots) }

// Pinned returns the number of distinct pinned objects
func (c *Collector) Pinned() int { return len(c.pins) }

// Cycles returns how many collections have completed
func (c *Collector) Cycles() uint64 { return c.cycles }

// LastStats returns the statistics of the latest cycle, or nil
func (c *Collector) LastStats() *Stats { return c.last }

// Collect runs one full stop-the-world cycle: everything reachable from a
// root or pin is marked, then every unmarked object is unregistered and
// released. Survivors leave with their mark cleared. When verbose is set
// the cycle report is logged at info level.
func (c *Collector) Collect(verbose bool) Stats {
	start := time.Now()
	if c.closed {
		return Stats{Timestamp: start}
	}

	stats := Stats{
		Cycle:     c.cycles + 1,
		Roots:     len(c.roots),
		Pinned:    len(c.pins),
		Timestamp: start,
	}

	m := c.mark()
	stats.Traced = m.marked
	stats.PeakWorkList = m.peak
	stats.HeapBefore = c.heap.len()

	// Classify first; the registry is not mutated while it is scanned.
	dead := c.classify(&stats)
	for _, obj := range dead {
		stats.FreedBytes += c.heap.destroy(obj)
	}
	stats.Dead = len(dead)
	stats.Duration = time.Since(start)

	c.cycles++
	c.last = &stats
	c.report(&stats, verbose || c.verbose)

	if c.recorder != nil {
		if err := c.recorder.Record(stats); err != nil {
			c.log.Warningf("cycle %d: recording stats: %s", stats.Cycle, err)
		}
	}
	return stats
}

// mark marks everything reachable from the roots and pins. Objects marked
// directly since the last sweep are traced again, since their references
// may have changed after they were marked.
func (c *Collector) mark() *Marker {
	m := newMarker(c, c.workListCap)
	for _, obj := range c.heap.objects {
		if obj.gcHeader().marked {
			m.push(obj)
		}
	}
	for _, obj := range c.roots {
		m.Visit(obj)
	}
	for _, e := range c.pins {
		m.Visit(e.obj)
	}
	m.drain()
	return m
}

// classify clears the mark on survivors and returns the unmarked objects
func (c *Collector) classify(stats *Stats) []Object {
	var dead []Object
	for _, obj := range c.heap.objects {
		h := obj.gcHeader()
		if h.marked {
			h.marked = false
			stats.Live++
			continue
		}
		dead = append(dead, obj)
	}
	return dead
}

func (c *Collector) report(s *Stats, verbose bool) {
	logf := c.log.Debugf
	if verbose {
		logf = c.log.Infof
	}
	logf("cycle %d: %d roots, %d pinned, %d objects in heap", s.Cycle, s.Roots, s.Pinned, s.HeapBefore)
	logf("%s", s)
}

// Close destroys every tracked object and empties the root set and pin
// table. Track fails with ErrClosed afterwards and Collect does nothing.
func (c *Collector) Close() error {
	if c.closed {
		return nil
	}
	all := make([]Object, 0, c.heap.len())
	for _, obj := range c.heap.objects {
		all = append(all, obj)
	}
	for _, obj := range all {
		c.heap.destroy(obj)
	}
	c.roots = make(rootSet)
	c.pins = make(pinTable)
	c.closed = true
	c.log.Debugf("closed after %d cycles, released %d objects", c.cycles, len(all))
	return nil
}
