// ABOUTME: Retained sizes derived from the dominator tree
// ABOUTME: How many bytes each object keeps alive on its own

package graph

// RetainedSize maps every reachable object to its retained size: its own
// size plus the sizes of all objects it dominates. Those are exactly the
// bytes a collection would reclaim if nothing else referenced the object.
func RetainedSize(g Graph) map[ObjID]uint64 {
	retained := retainedAll(g)
	delete(retained, 0)
	return retained
}

// RetainedSizeSubsets returns retained sizes for the requested objects
// only. Unknown and unreachable IDs are left out.
func RetainedSizeSubsets(g Graph, targetIDs []ObjID) map[ObjID]uint64 {
	result := make(map[ObjID]uint64)
	if len(targetIDs) == 0 {
		return result
	}
	retained := retainedAll(g)
	for _, id := range targetIDs {
		if size, ok := retained[id]; ok && id != 0 {
			result[id] = size
		}
	}
	return result
}

// retainedAll sums sizes bottom-up over the dominator tree. Nodes are
// visited in reverse breadth-first order so children finish before parents.
func retainedAll(g Graph) map[ObjID]uint64 {
	tree := DominatorTree(Dominators(g))

	order := []ObjID{0}
	for i := 0; i < len(order); i++ {
		order = append(order, tree[order[i]]...)
	}

	retained := make(map[ObjID]uint64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		var size uint64
		if obj := g.GetObject(node); obj != nil {
			size = obj.Size
		}
		for _, child := range tree[node] {
			size += retained[child]
		}
		retained[node] = size
	}
	return retained
}
