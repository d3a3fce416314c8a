// ABOUTME: Format-neutral snapshot document shared by every codec
// ABOUTME: Converts between graph snapshots and their serialised form

package heapdump

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prateek/marksweep/graph"
)

// Document is the serialised form of a snapshot
type Document struct {
	ID      string        `json:"id" cbor:"id"`
	TakenAt time.Time     `json:"taken_at" cbor:"taken_at"`
	Objects []DocObject   `json:"objects" cbor:"objects"`
	Roots   []graph.ObjID `json:"roots" cbor:"roots"`
}

// DocObject is one object of a Document
type DocObject struct {
	ID   graph.ObjID   `json:"id" cbor:"id"`
	Type string        `json:"type" cbor:"type"`
	Size uint64        `json:"size" cbor:"size"`
	Ptrs []graph.ObjID `json:"ptrs" cbor:"ptrs"`
}

// NewDocument captures g under a fresh snapshot ID
func NewDocument(g graph.Graph) *Document {
	doc := &Document{
		ID:      uuid.NewString(),
		TakenAt: time.Now().UTC(),
		Objects: make([]DocObject, 0, g.NumObjects()),
		Roots:   g.GetRoots().IDs,
	}
	g.ForEachObject(func(obj *graph.Object) {
		ptrs := obj.Ptrs
		if ptrs == nil {
			ptrs = []graph.ObjID{}
		}
		doc.Objects = append(doc.Objects, DocObject{
			ID:   obj.ID,
			Type: obj.Type,
			Size: obj.Size,
			Ptrs: ptrs,
		})
	})
	if doc.Roots == nil {
		doc.Roots = []graph.ObjID{}
	}
	return doc
}

// Graph validates the document and rebuilds the snapshot graph
func (d *Document) Graph() (graph.Graph, error) {
	g := graph.NewMemGraph()
	for i, obj := range d.Objects {
		if obj.ID == 0 {
			return nil, fmt.Errorf("object at index %d: %w", i, ErrMissingID)
		}
		ptrs := obj.Ptrs
		if ptrs == nil {
			ptrs = []graph.ObjID{}
		}
		g.AddObject(&graph.Object{
			ID:   obj.ID,
			Type: obj.Type,
			Size: obj.Size,
			Ptrs: ptrs,
		})
	}
	roots := d.Roots
	if roots == nil {
		roots = []graph.ObjID{}
	}
	g.SetRoots(graph.Roots{IDs: roots})
	return g, nil
}
