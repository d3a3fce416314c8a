// ABOUTME: Registry of snapshot codecs
// ABOUTME: Sniffs the format of incoming dumps and picks a writer by name

package heapdump

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/prateek/marksweep/graph"
)

// sniffLen is how much of a dump codecs get to look at in CanParse
const sniffLen = 4096

var (
	// ErrNoParser is returned when no codec recognises the dump
	ErrNoParser = errors.New("no parser found for dump format")

	// ErrUnknownFormat is returned when no codec has the requested name
	ErrUnknownFormat = errors.New("unknown dump format")

	// ErrMissingID is returned for objects without a handle
	ErrMissingID = errors.New("object missing ID")
)

type codecRegistry struct {
	mu     sync.RWMutex
	codecs []Codec
}

var registry = &codecRegistry{}

// Register adds a codec. Codecs are tried in registration order.
func Register(c Codec) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.codecs = append(registry.codecs, c)
}

// Lookup returns the codec registered under name
func Lookup(name string) (Codec, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	for _, c := range registry.codecs {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// Formats lists the registered codec names
func Formats() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.codecs))
	for _, c := range registry.codecs {
		names = append(names, c.Name())
	}
	return names
}

// Write encodes g with the codec registered under format
func Write(w io.Writer, format string, g graph.Graph) error {
	c, err := Lookup(format)
	if err != nil {
		return err
	}
	return c.Write(w, g)
}

// Open reads a dump in any registered format
func Open(r io.Reader) (graph.Graph, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("reading dump header: %w", err)
	}
	head = head[:n]

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, c := range registry.codecs {
		if c.CanParse(bytes.NewReader(head)) {
			return c.Parse(io.MultiReader(bytes.NewReader(head), r))
		}
	}
	return nil, ErrNoParser
}
