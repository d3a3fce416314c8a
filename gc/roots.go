// ABOUTME: Root set of objects that are always considered reachable
// ABOUTME: Plain membership with idempotent add and remove

package gc

type rootSet map[ObjID]Object

func (s rootSet) add(id ObjID, obj Object) {
	s[id] = obj
}

func (s rootSet) remove(id ObjID) {
	delete(s, id)
}

func (s rootSet) contains(id ObjID) bool {
	_, ok := s[id]
	return ok
}
