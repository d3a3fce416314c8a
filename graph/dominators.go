// ABOUTME: Lengauer-Tarjan immediate dominators over a heap snapshot
// ABOUTME: Uses an iterative DFS and precomputed predecessors so deep chains cannot overflow the stack

package graph

import "sort"

// Dominators computes the immediate dominator of every object reachable
// from the roots. A synthetic super-root with ID 0 points at every root;
// objects dominated only by it map to 0. The super-root itself is omitted.
func Dominators(g Graph) map[ObjID]ObjID {
	succ := make(map[ObjID][]ObjID)
	for _, id := range g.GetRoots().IDs {
		if g.GetObject(id) != nil {
			succ[0] = append(succ[0], id)
		}
	}
	g.ForEachObject(func(obj *Object) {
		for _, ptr := range obj.Ptrs {
			if g.GetObject(ptr) != nil {
				succ[obj.ID] = append(succ[obj.ID], ptr)
			}
		}
	})

	// Number vertices in DFS preorder. Index 0 is the super-root.
	dfnum := map[ObjID]int{0: 0}
	vertex := []ObjID{0}
	parent := []int{-1}

	type frame struct {
		id   ObjID
		next int
	}
	stack := []frame{{id: 0}}
	for len(stack) > 0 {
		top := len(stack) - 1
		edges := succ[stack[top].id]
		if stack[top].next == len(edges) {
			stack = stack[:top]
			continue
		}
		w := edges[stack[top].next]
		stack[top].next++
		if _, seen := dfnum[w]; seen {
			continue
		}
		dfnum[w] = len(vertex)
		parent = append(parent, dfnum[stack[top].id])
		vertex = append(vertex, w)
		stack = append(stack, frame{id: w})
	}

	n := len(vertex)
	preds := make([][]int, n)
	for v, edges := range succ {
		vi, ok := dfnum[v]
		if !ok {
			continue
		}
		for _, w := range edges {
			if wi, ok := dfnum[w]; ok {
				preds[wi] = append(preds[wi], vi)
			}
		}
	}

	semi := make([]int, n)
	idom := make([]int, n)
	samedom := make([]int, n)
	ancestor := make([]int, n)
	label := make([]int, n)
	bucket := make([][]int, n)
	for i := range semi {
		semi[i] = i
		samedom[i] = i
		ancestor[i] = -1
		label[i] = i
	}

	// compress shortens the ancestor chain above v, keeping in label the
	// vertex with the smallest semidominator seen along the way.
	var path []int
	compress := func(v int) {
		path = path[:0]
		for u := v; ancestor[ancestor[u]] != -1; u = ancestor[u] {
			path = append(path, u)
		}
		for i := len(path) - 1; i >= 0; i-- {
			u := path[i]
			a := ancestor[u]
			if semi[label[a]] < semi[label[u]] {
				label[u] = label[a]
			}
			ancestor[u] = ancestor[a]
		}
	}
	eval := func(v int) int {
		if ancestor[v] == -1 {
			return v
		}
		compress(v)
		return label[v]
	}

	for w := n - 1; w > 0; w-- {
		p := parent[w]
		for _, v := range preds[w] {
			if u := eval(v); semi[u] < semi[w] {
				semi[w] = semi[u]
			}
		}
		bucket[semi[w]] = append(bucket[semi[w]], w)
		ancestor[w] = p

		for _, v := range bucket[p] {
			if u := eval(v); semi[u] < semi[v] {
				samedom[v] = u
			} else {
				idom[v] = p
			}
		}
		bucket[p] = nil
	}
	for w := 1; w < n; w++ {
		if samedom[w] != w {
			idom[w] = idom[samedom[w]]
		}
	}

	result := make(map[ObjID]ObjID, n-1)
	for w := 1; w < n; w++ {
		result[vertex[w]] = vertex[idom[w]]
	}
	return result
}

// DominatorTree inverts immediate dominators into parent -> children lists.
// Every node, including the super-root 0, has an entry.
func DominatorTree(idom map[ObjID]ObjID) map[ObjID][]ObjID {
	tree := map[ObjID][]ObjID{0: {}}
	for node := range idom {
		if _, ok := tree[node]; !ok {
			tree[node] = []ObjID{}
		}
	}
	for node, dom := range idom {
		tree[dom] = append(tree[dom], node)
	}
	for _, children := range tree {
		sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	}
	return tree
}
