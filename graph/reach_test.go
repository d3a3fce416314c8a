// ABOUTME: Tests for snapshot reachability
// ABOUTME: Covers cycles, dangling edges and very deep chains

package graph

import (
	"reflect"
	"testing"
)

func TestReachable(t *testing.T) {
	tests := []struct {
		name    string
		objects []*Object
		roots   []ObjID
		garbage []ObjID
	}{
		{
			name:    "empty graph",
			garbage: nil,
		},
		{
			name: "no roots",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{2}},
				{ID: 2},
			},
			garbage: []ObjID{1, 2},
		},
		{
			name: "unrooted cycle",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{2}},
				{ID: 2, Ptrs: []ObjID{1}},
				{ID: 3},
			},
			roots:   []ObjID{3},
			garbage: []ObjID{1, 2},
		},
		{
			name: "rooted cycle with tail",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{2}},
				{ID: 2, Ptrs: []ObjID{3}},
				{ID: 3, Ptrs: []ObjID{1, 4}},
				{ID: 4},
				{ID: 5, Ptrs: []ObjID{4}},
			},
			roots:   []ObjID{2},
			garbage: []ObjID{5},
		},
		{
			name: "dangling edge and missing root",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{42}},
				{ID: 2},
			},
			roots:   []ObjID{1, 77},
			garbage: []ObjID{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewMemGraph()
			for _, obj := range tt.objects {
				g.AddObject(obj)
			}
			g.SetRoots(Roots{IDs: tt.roots})

			got := Unreachable(g)
			if !reflect.DeepEqual(got, tt.garbage) {
				t.Errorf("Unreachable() = %v, want %v", got, tt.garbage)
			}

			reachable := Reachable(g)
			if len(reachable)+len(got) != len(tt.objects) {
				t.Errorf("reachable %d + unreachable %d != %d objects",
					len(reachable), len(got), len(tt.objects))
			}
		})
	}
}

func TestReachableDeepChain(t *testing.T) {
	const n = 200000
	g := NewMemGraph()
	for i := 1; i < n; i++ {
		g.AddObject(&Object{ID: ObjID(i), Ptrs: []ObjID{ObjID(i + 1)}})
	}
	g.AddObject(&Object{ID: n})
	g.SetRoots(Roots{IDs: []ObjID{1}})

	if got := len(Reachable(g)); got != n {
		t.Errorf("Reachable() found %d objects, want %d", got, n)
	}
}
