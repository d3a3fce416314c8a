// ABOUTME: Breadth-first search for reference chains from an object to its roots
// ABOUTME: Answers why an object is still alive, shortest chains first

package graph

// Path is a reference chain starting at the queried object and ending at a root
type Path struct {
	IDs []ObjID
}

// pathNode is one step of a partial chain, linked back toward the start
type pathNode struct {
	id    ObjID
	prev  *pathNode
	depth int
}

func (n *pathNode) contains(id ObjID) bool {
	for p := n; p != nil; p = p.prev {
		if p.id == id {
			return true
		}
	}
	return false
}

func (n *pathNode) path() Path {
	ids := make([]ObjID, n.depth+1)
	for p := n; p != nil; p = p.prev {
		ids[p.depth] = p.id
	}
	return Path{IDs: ids}
}

// PathsToRoots returns up to maxPaths chains from `from` to a root, walking
// referrers breadth-first. A chain never visits the same object twice, so
// cycles terminate. A root yields the single chain [from].
func PathsToRoots(g Graph, from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 {
		return nil
	}

	rootSet := make(map[ObjID]bool)
	for _, id := range g.GetRoots().IDs {
		rootSet[id] = true
	}
	if rootSet[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	reverse := BuildReverseEdges(g)
	var result []Path
	queue := []*pathNode{{id: from}}

	for len(queue) > 0 && len(result) < maxPaths {
		node := queue[0]
		queue = queue[1:]

		for _, referrer := range reverse[node.id] {
			if node.contains(referrer) {
				continue
			}
			next := &pathNode{id: referrer, prev: node, depth: node.depth + 1}
			if !rootSet[referrer] {
				queue = append(queue, next)
				continue
			}
			result = append(result, next.path())
			if len(result) >= maxPaths {
				break
			}
		}
	}

	return result
}
