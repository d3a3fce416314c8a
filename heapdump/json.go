// ABOUTME: JSON snapshot codec
// ABOUTME: Human-readable dumps for inspection and test fixtures

package heapdump

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prateek/marksweep/graph"
)

// JSONCodec reads and writes snapshots as a single JSON object
type JSONCodec struct{}

func (c *JSONCodec) Name() string { return "json" }

// CanParse looks for a non-null top-level "objects" key. It walks tokens
// rather than decoding, so a truncated preview of a large dump still matches.
func (c *JSONCodec) CanParse(r io.Reader) bool {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return false
	}

	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return false
		}
		if key == "objects" {
			tok, err := dec.Token()
			return err == nil && tok != nil
		}
		if err := skipJSONValue(dec); err != nil {
			return false
		}
	}
	return false
}

func skipJSONValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}

func (c *JSONCodec) Parse(r io.Reader) (graph.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return doc.Graph()
}

func (c *JSONCodec) Write(w io.Writer, g graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func init() {
	Register(&JSONCodec{})
}
