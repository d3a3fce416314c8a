// ABOUTME: Reference scenarios the CLI runs against a collector
// ABOUTME: Each checks its own outcome and returns an error on a mismatch

package main

import (
	"fmt"

	"github.com/prateek/marksweep/gc"
)

type scenario struct {
	name string
	run  func(c *gc.Collector, n int) error
}

var scenarios = []scenario{
	{"external marks survive", externalMarks},
	{"unreachable cycle", unreachableCycle},
	{"root then pin", rootThenPin},
	{"deep chain", deepChain},
}

// pair is a tracked cell that may reference another
type pair struct {
	gc.Header
	other *pair
}

func (p *pair) Trace(v gc.Visitor) { v.Visit(p.other) }

func expect(s gc.Stats, live, dead int) error {
	if s.Live != live || s.Dead != dead {
		return fmt.Errorf("cycle %d: got %d live, %d dead; want %d live, %d dead",
			s.Cycle, s.Live, s.Dead, live, dead)
	}
	return nil
}

// externalMarks marks n fresh buffers directly, collects, then collects
// again with nothing keeping them alive
func externalMarks(c *gc.Collector, n int) error {
	base := c.Live()
	for i := 0; i < n; i++ {
		b, err := gc.NewBuffer(c, 64)
		if err != nil {
			return err
		}
		gc.Mark(b)
	}
	if err := expect(c.Collect(false), base+n, 0); err != nil {
		return err
	}
	return expect(c.Collect(false), base, n)
}

func unreachableCycle(c *gc.Collector, _ int) error {
	base := c.Live()
	a := gc.MustTrack(c, &pair{})
	b := gc.MustTrack(c, &pair{other: a})
	a.other = b
	return expect(c.Collect(false), base, 2)
}

func rootThenPin(c *gc.Collector, _ int) error {
	base := c.Live()
	obj, err := gc.NewBuffer(c, 256)
	if err != nil {
		return err
	}
	if err := c.AddRoot(obj); err != nil {
		return err
	}
	if err := c.Pin(obj); err != nil {
		return err
	}
	if err := expect(c.Collect(false), base+1, 0); err != nil {
		return err
	}

	c.RemoveRoot(obj)
	if err := expect(c.Collect(false), base+1, 0); err != nil {
		return err
	}

	if err := c.Unpin(obj); err != nil {
		return err
	}
	return expect(c.Collect(false), base, 1)
}

// deepChain roots a linked list n*100 cells long and then drops it
func deepChain(c *gc.Collector, n int) error {
	base := c.Live()
	length := n * 100
	if length < 1 {
		length = 1
	}
	head := gc.MustTrack(c, &pair{})
	for tail, i := head, 1; i < length; i++ {
		next := gc.MustTrack(c, &pair{})
		tail.other = next
		tail = next
	}
	if err := c.AddRoot(head); err != nil {
		return err
	}
	if err := expect(c.Collect(false), base+length, 0); err != nil {
		return err
	}
	c.RemoveRoot(head)
	return expect(c.Collect(false), base, length)
}

// scene leaves a small rooted structure and some garbage in the heap for
// the dump and the dry run: root -> pair -> pair, plus detached buffers
func scene(c *gc.Collector) error {
	tail := gc.MustTrack(c, &pair{})
	root := gc.MustTrack(c, &pair{other: gc.MustTrack(c, &pair{other: tail})})
	if err := c.AddRoot(root); err != nil {
		return err
	}
	for _, n := range []int{512, 1024} {
		if _, err := gc.NewBuffer(c, n); err != nil {
			return err
		}
	}
	return nil
}
