// ABOUTME: Read-only graph snapshots of the tracked heap
// ABOUTME: Explains why objects are alive and what they retain

package gc

import (
	"fmt"
	"sort"

	"github.com/prateek/marksweep/graph"
)

// edgeRecorder collects the handles an object declares without marking
type edgeRecorder struct {
	owner *Collector
	ids   []ObjID
}

func (r *edgeRecorder) Visit(child Object) {
	h := headerOf(child)
	if h == nil || h.owner != r.owner || !r.owner.heap.holds(h) {
		return
	}
	r.ids = append(r.ids, h.id)
}

// Snapshot records the heap as an object graph. Roots and pinned objects
// both appear as graph roots. Mark state is left untouched.
func (c *Collector) Snapshot() *graph.MemGraph {
	g := graph.NewMemGraph()
	for id, obj := range c.heap.objects {
		rec := &edgeRecorder{owner: c}
		obj.Trace(rec)
		g.AddObject(&graph.Object{
			ID:   id,
			Type: fmt.Sprintf("%T", obj),
			Size: sizeOf(obj),
			Ptrs: rec.ids,
		})
	}
	g.SetRoots(graph.Roots{IDs: c.protected()})
	return g
}

// protected returns the sorted union of root and pin handles
func (c *Collector) protected() []ObjID {
	ids := make([]ObjID, 0, len(c.roots)+len(c.pins))
	for id := range c.roots {
		ids = append(ids, id)
	}
	for id := range c.pins {
		if !c.roots.contains(id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WhyAlive returns up to maxPaths reference chains from obj back to a root
// or pinned object. An empty result means the next Collect reclaims obj
// unless it has been marked directly.
func (c *Collector) WhyAlive(obj Object, maxPaths int) ([]graph.Path, error) {
	h, err := c.owned(obj)
	if err != nil {
		return nil, err
	}
	return graph.PathsToRoots(c.Snapshot(), h.id, maxPaths), nil
}

// Retained maps every reachable object to the bytes that would become
// unreachable without it
func (c *Collector) Retained() map[ObjID]uint64 {
	return graph.RetainedSize(c.Snapshot())
}

// Garbage lists, in ascending order, the handles the next Collect would
// reclaim if nothing changes before then. Objects marked directly count as
// roots, as they do in Collect.
func (c *Collector) Garbage() []ObjID {
	g := c.Snapshot()
	roots := g.GetRoots().IDs
	for id, obj := range c.heap.objects {
		if obj.gcHeader().marked {
			roots = append(roots, id)
		}
	}
	g.SetRoots(graph.Roots{IDs: roots})

	reachable := graph.Reachable(g)
	var ids []ObjID
	for id := range c.heap.objects {
		if !reachable[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
