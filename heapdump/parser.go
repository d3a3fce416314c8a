// ABOUTME: Codec interfaces for collector heap snapshots
// ABOUTME: A codec can sniff, read and write one snapshot format

package heapdump

import (
	"io"

	"github.com/prateek/marksweep/graph"
)

// Parser reads one snapshot format
type Parser interface {
	// CanParse reports whether r looks like this format. r is a preview of
	// the start of the stream and may be truncated.
	CanParse(r io.Reader) bool

	// Parse reads a complete snapshot from the start of r
	Parse(r io.Reader) (graph.Graph, error)
}

// Codec is a Parser that can also write its format
type Codec interface {
	Parser

	// Name is the format name used by Lookup and Write, e.g. "json"
	Name() string

	// Write encodes g as a complete snapshot
	Write(w io.Writer, g graph.Graph) error
}
