// ABOUTME: Reference-counted pin table protecting objects from collection
// ABOUTME: Entries exist only while their count is positive

package gc

import "fmt"

type pinEntry struct {
	obj   Object
	count uint
}

type pinTable map[ObjID]*pinEntry

func (t pinTable) pin(id ObjID, obj Object) uint {
	e, ok := t[id]
	if !ok {
		e = &pinEntry{obj: obj}
		t[id] = e
	}
	e.count++
	return e.count
}

// unpin decrements the count for id and drops the entry at zero
func (t pinTable) unpin(id ObjID) (uint, error) {
	e, ok := t[id]
	if !ok {
		return 0, fmt.Errorf("unpin object %d: %w", id, ErrNotPinned)
	}
	e.count--
	if e.count == 0 {
		delete(t, id)
	}
	return e.count, nil
}

func (t pinTable) count(id ObjID) uint {
	if e, ok := t[id]; ok {
		return e.count
	}
	return 0
}
