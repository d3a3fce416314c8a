// ABOUTME: Tests for the codec registry
// ABOUTME: Validates registration, format sniffing and lookup by name

package heapdump

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prateek/marksweep/graph"
)

// mockCodec recognises streams that mention its name
type mockCodec struct {
	name   string
	parsed int
}

func (c *mockCodec) Name() string { return c.name }

func (c *mockCodec) CanParse(r io.Reader) bool {
	buf := make([]byte, 100)
	n, _ := r.Read(buf)
	return strings.Contains(string(buf[:n]), c.name)
}

func (c *mockCodec) Parse(r io.Reader) (graph.Graph, error) {
	c.parsed++
	return graph.NewMemGraph(), nil
}

func (c *mockCodec) Write(w io.Writer, g graph.Graph) error {
	_, err := io.WriteString(w, c.name)
	return err
}

// isolateRegistry swaps in an empty registry for the duration of the test
func isolateRegistry(t *testing.T) {
	t.Helper()
	saved := registry
	registry = &codecRegistry{}
	t.Cleanup(func() { registry = saved })
}

func TestDefaultCodecsRegistered(t *testing.T) {
	formats := Formats()
	for _, want := range []string{"json", "cbor"} {
		found := false
		for _, f := range formats {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("format %q not registered, have %v", want, formats)
		}
	}
}

func TestOpen(t *testing.T) {
	isolateRegistry(t)
	Register(&mockCodec{name: "alpha"})
	Register(&mockCodec{name: "beta"})

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"first codec", "alpha dump data", nil},
		{"second codec", "beta dump data", nil},
		{"unknown format", "gamma dump data", ErrNoParser},
		{"empty input", "", ErrNoParser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(strings.NewReader(tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenFirstMatchWins(t *testing.T) {
	isolateRegistry(t)
	first := &mockCodec{name: "dup"}
	second := &mockCodec{name: "dup"}
	Register(first)
	Register(second)

	if _, err := Open(strings.NewReader("dup")); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if first.parsed != 1 || second.parsed != 0 {
		t.Errorf("parsed counts = %d, %d; want 1, 0", first.parsed, second.parsed)
	}
}

func TestWriteByName(t *testing.T) {
	isolateRegistry(t)
	Register(&mockCodec{name: "alpha"})

	var buf bytes.Buffer
	if err := Write(&buf, "alpha", graph.NewMemGraph()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != "alpha" {
		t.Errorf("Write() wrote %q", buf.String())
	}

	if err := Write(&buf, "missing", graph.NewMemGraph()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Write() unknown format error = %v", err)
	}
}

func TestThreadSafeRegistry(t *testing.T) {
	isolateRegistry(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			Register(&mockCodec{name: string(rune('a' + id))})
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if n := len(Formats()); n != 10 {
		t.Errorf("Expected 10 codecs after concurrent registration, got %d", n)
	}
}
