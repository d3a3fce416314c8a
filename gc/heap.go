// ABOUTME: Heap registry holding every tracked object
// ABOUTME: The registry is the sole owner of object lifetime

package gc

import "fmt"

// heap is the authoritative set of tracked objects, keyed by handle
type heap struct {
	objects map[ObjID]Object
	nextID  ObjID
}

func newHeap() *heap {
	return &heap{
		objects: make(map[ObjID]Object),
	}
}

// register assigns obj a fresh handle and hands its lifetime to owner
func (h *heap) register(owner *Collector, obj Object) error {
	hdr := headerOf(obj)
	if hdr == nil {
		return ErrNilObject
	}
	if hdr.owner != nil {
		return fmt.Errorf("register object %d: %w", hdr.id, ErrAlreadyTracked)
	}

	h.nextID++
	hdr.id = h.nextID
	hdr.owner = owner
	hdr.marked = false
	h.objects[hdr.id] = obj
	return nil
}

// unregister drops the bookkeeping for obj without releasing it
func (h *heap) unregister(obj Object) {
	hdr := headerOf(obj)
	if hdr == nil {
		return
	}
	delete(h.objects, hdr.id)
}

// destroy unregisters obj and releases it in one step, returning the
// bytes it accounted for. The header is cleared so later edges to the
// object are treated as dangling.
func (h *heap) destroy(obj Object) uint64 {
	size := sizeOf(obj)
	h.unregister(obj)

	hdr := obj.gcHeader()
	hdr.owner = nil
	hdr.marked = false
	if r, ok := obj.(Releaser); ok {
		r.Release()
	}
	return size
}

func (h *heap) len() int {
	return len(h.objects)
}

func (h *heap) lookup(id ObjID) (Object, bool) {
	obj, ok := h.objects[id]
	return obj, ok
}

// holds reports whether hdr belongs to the registered object for its
// handle. A value copy of a tracked object carries the same id and owner
// but a different header.
func (h *heap) holds(hdr *Header) bool {
	obj, ok := h.lookup(hdr.id)
	return ok && obj.gcHeader() == hdr
}

func sizeOf(obj Object) uint64 {
	if s, ok := obj.(Sizer); ok {
		return s.Size()
	}
	return 0
}
