// ABOUTME: CBOR snapshot codec
// ABOUTME: Compact, deterministic dumps prefixed with the self-describe tag

package heapdump

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/prateek/marksweep/graph"
)

// selfDescribe is CBOR tag 55799, which marks a stream as CBOR
var selfDescribe = []byte{0xd9, 0xd9, 0xf7}

var cborEncMode cbor.EncMode

func init() {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("heapdump: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em

	Register(&CBORCodec{})
}

// CBORCodec reads and writes snapshots as canonical CBOR
type CBORCodec struct{}

func (c *CBORCodec) Name() string { return "cbor" }

func (c *CBORCodec) CanParse(r io.Reader) bool {
	head := make([]byte, len(selfDescribe))
	if _, err := io.ReadFull(r, head); err != nil {
		return false
	}
	return bytes.Equal(head, selfDescribe)
}

func (c *CBORCodec) Parse(r io.Reader) (graph.Graph, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(selfDescribe))
	if err == nil && bytes.Equal(head, selfDescribe) {
		_, _ = br.Discard(len(selfDescribe))
	}

	var doc Document
	if err := cbor.NewDecoder(br).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode CBOR: %w", err)
	}
	return doc.Graph()
}

func (c *CBORCodec) Write(w io.Writer, g graph.Graph) error {
	data, err := cborEncMode.Marshal(NewDocument(g))
	if err != nil {
		return fmt.Errorf("failed to encode CBOR: %w", err)
	}
	if _, err := w.Write(selfDescribe); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
