// ABOUTME: Reachability over a snapshot using an explicit work-list
// ABOUTME: Mirrors the collector's mark phase without touching live objects

package graph

// Reachable returns the set of objects reachable from the roots of g.
// Edges to IDs that are not in g are ignored.
func Reachable(g Graph) map[ObjID]bool {
	seen := make(map[ObjID]bool)
	var work []ObjID

	push := func(id ObjID) {
		if seen[id] || g.GetObject(id) == nil {
			return
		}
		seen[id] = true
		work = append(work, id)
	}

	for _, id := range g.GetRoots().IDs {
		push(id)
	}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		for _, ptr := range g.GetObject(id).Ptrs {
			push(ptr)
		}
	}
	return seen
}

// Unreachable returns, in ascending order, the objects no root reaches
func Unreachable(g Graph) []ObjID {
	reachable := Reachable(g)
	var ids []ObjID
	g.ForEachObject(func(obj *Object) {
		if !reachable[obj.ID] {
			ids = append(ids, obj.ID)
		}
	})
	return ids
}
