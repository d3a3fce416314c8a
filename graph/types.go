// ABOUTME: Core data types for heap snapshots
// ABOUTME: Defines Object, ObjID and Roots as recorded from a collector

package graph

// ObjID is the handle of a tracked object. 0 is reserved for the
// super-root that points at every root.
type ObjID uint64

// Object is one tracked object as it looked when the snapshot was taken
type Object struct {
	ID   ObjID   // Collector handle
	Type string  // Go type name, e.g. "*gc.Buffer"
	Size uint64  // Bytes reported by the object, 0 if it reports none
	Ptrs []ObjID // Handles this object declared from Trace
}

// Roots is the set of objects protected from collection, roots and pins alike
type Roots struct {
	IDs []ObjID
}
