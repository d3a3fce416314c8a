// ABOUTME: Graph interface and in-memory implementation
// ABOUTME: Snapshots are written once and then queried by the analyses

package graph

import (
	"sort"
	"sync"
)

// Graph is a read-mostly object graph
type Graph interface {
	// AddObject adds or replaces an object
	AddObject(obj *Object)

	// GetObject returns the object with the given ID, or nil
	GetObject(id ObjID) *Object

	// NumObjects returns the total number of objects
	NumObjects() int

	// ForEachObject visits every object in ascending ID order
	ForEachObject(fn func(*Object))

	// SetRoots replaces the root set
	SetRoots(roots Roots)

	// GetRoots returns the root set
	GetRoots() Roots
}

// MemGraph is a Graph held entirely in memory
type MemGraph struct {
	mu      sync.RWMutex
	objects map[ObjID]*Object
	order   []ObjID // sorted IDs, rebuilt lazily
	roots   Roots
}

// NewMemGraph returns an empty graph
func NewMemGraph() *MemGraph {
	return &MemGraph{
		objects: make(map[ObjID]*Object),
	}
}

// AddObject adds an object, replacing any with the same ID
func (g *MemGraph) AddObject(obj *Object) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.objects[obj.ID]; !exists {
		g.order = nil
	}
	g.objects[obj.ID] = obj
}

// GetObject retrieves an object by ID
func (g *MemGraph) GetObject(id ObjID) *Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.objects[id]
}

// NumObjects returns the total number of objects
func (g *MemGraph) NumObjects() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.objects)
}

// IDs returns every object ID in ascending order
func (g *MemGraph) IDs() []ObjID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]ObjID(nil), g.sortedLocked()...)
}

// sortedLocked must be called with g.mu held for writing
func (g *MemGraph) sortedLocked() []ObjID {
	if g.order == nil {
		g.order = make([]ObjID, 0, len(g.objects))
		for id := range g.objects {
			g.order = append(g.order, id)
		}
		sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
	}
	return g.order
}

// ForEachObject iterates over all objects in ascending ID order
func (g *MemGraph) ForEachObject(fn func(*Object)) {
	for _, id := range g.IDs() {
		if obj := g.GetObject(id); obj != nil {
			fn(obj)
		}
	}
}

// SetRoots stores a copy of the GC roots
func (g *MemGraph) SetRoots(roots Roots) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = Roots{IDs: append([]ObjID(nil), roots.IDs...)}
}

// GetRoots returns a copy of the GC roots
func (g *MemGraph) GetRoots() Roots {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Roots{IDs: append([]ObjID(nil), g.roots.IDs...)}
}
