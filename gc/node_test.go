// ABOUTME: Test object type shared by the gc package tests
// ABOUTME: A node with outgoing references, a size and a release counter

package gc

import "testing"

type node struct {
	Header
	name     string
	refs     []Object
	size     uint64
	released int
}

func (n *node) Trace(v Visitor) {
	for _, r := range n.refs {
		v.Visit(r)
	}
}

func (n *node) Size() uint64 { return n.size }

func (n *node) Release() { n.released++ }

func (n *node) point(to ...*node) {
	for _, t := range to {
		n.refs = append(n.refs, t)
	}
}

// newNode tracks a fresh node in c
func newNode(t *testing.T, c *Collector, name string) *node {
	t.Helper()
	n := &node{name: name, size: 16}
	if err := c.Track(n); err != nil {
		t.Fatalf("Track(%s) failed: %v", name, err)
	}
	return n
}

// newChain tracks n nodes where each references the next
func newChain(t *testing.T, c *Collector, n int) []*node {
	t.Helper()
	nodes := make([]*node, n)
	for i := range nodes {
		nodes[i] = newNode(t, c, "chain")
		if i > 0 {
			nodes[i-1].point(nodes[i])
		}
	}
	return nodes
}
