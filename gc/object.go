// ABOUTME: Trackable object abstraction and the work-list marker
// ABOUTME: Objects embed Header and declare their references through Trace

package gc

import (
	"reflect"

	"github.com/prateek/marksweep/graph"
)

// ObjID is the stable handle assigned to an object when it is tracked.
// IDs start at 1; 0 is the super-root in graph snapshots.
type ObjID = graph.ObjID

// Visitor receives each reference an object declares from Trace
type Visitor interface {
	Visit(child Object)
}

// Object is anything the collector can track. Embed Header to satisfy it
// and override Trace to declare references to other tracked objects.
type Object interface {
	// Trace calls v.Visit once for every tracked object this one references.
	Trace(v Visitor)

	gcHeader() *Header
}

// Releaser is implemented by objects that hold resources to drop when swept
type Releaser interface {
	Release()
}

// Sizer reports how many bytes an object accounts for
type Sizer interface {
	Size() uint64
}

// Header is the bookkeeping embedded in every tracked object
type Header struct {
	noCopy noCopy

	id     ObjID
	owner  *Collector
	marked bool
}

// noCopy lets go vet's copylocks check flag copies of tracked objects
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

func (h *Header) gcHeader() *Header { return h }

// Trace declares no references
func (h *Header) Trace(Visitor) {}

// ID returns the handle assigned at registration, or 0 if untracked
func (h *Header) ID() ObjID { return h.id }

// Marked reports whether the object has been marked since the last sweep
func (h *Header) Marked() bool { return h.marked }

// Tracked reports whether a collector currently owns the object
func (h *Header) Tracked() bool { return h.owner != nil }

// headerOf returns nil for nil interfaces and typed nil pointers.
func headerOf(obj Object) *Header {
	if obj == nil {
		return nil
	}
	if rv := reflect.ValueOf(obj); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	return obj.gcHeader()
}

// Marker is the explicit work-list behind every mark. Marking an object
// sets its flag and pushes it; draining pops objects and traces them.
// An already-marked object is never pushed again, which is what makes
// cyclic graphs terminate.
type Marker struct {
	owner  *Collector
	stack  []Object
	marked int
	peak   int
}

func newMarker(owner *Collector, capacity int) *Marker {
	return &Marker{
		owner: owner,
		stack: make([]Object, 0, capacity),
	}
}

// Visit marks child and queues it for tracing. Nil, untracked, foreign,
// copied and already-marked objects are ignored.
func (m *Marker) Visit(child Object) {
	h := headerOf(child)
	if h == nil || h.marked || h.owner != m.owner || !m.owner.heap.holds(h) {
		return
	}
	h.marked = true
	m.marked++
	m.push(child)
}

// push queues obj for tracing without touching its mark
func (m *Marker) push(obj Object) {
	m.stack = append(m.stack, obj)
	if len(m.stack) > m.peak {
		m.peak = len(m.stack)
	}
}

// drain traces queued objects until the work-list is empty
func (m *Marker) drain() {
	for len(m.stack) > 0 {
		top := len(m.stack) - 1
		obj := m.stack[top]
		m.stack[top] = nil
		m.stack = m.stack[:top]
		obj.Trace(m)
	}
}

// Marked returns how many objects this marker has marked
func (m *Marker) Marked() int { return m.marked }

// Mark marks obj and everything reachable from it, returning the number of
// objects newly marked. Marking an already-marked object is a no-op.
func Mark(obj Object) int {
	h := headerOf(obj)
	if h == nil || h.owner == nil {
		return 0
	}
	m := newMarker(h.owner, h.owner.workListCap)
	m.Visit(obj)
	m.drain()
	return m.marked
}
