// ABOUTME: Tracked byte buffer payload
// ABOUTME: Holds no references; its backing array is dropped when swept

package gc

import "fmt"

// Buffer is a tracked, fixed-size byte array
type Buffer struct {
	Header
	data []byte
}

// NewBuffer allocates an n-byte buffer owned by c
func NewBuffer(c *Collector, n int) (*Buffer, error) {
	if n < 0 {
		return nil, fmt.Errorf("buffer of %d bytes: %w", n, ErrInvalidSize)
	}
	b := &Buffer{data: make([]byte, n)}
	if err := c.Track(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Bytes returns the backing array, or nil once the buffer has been swept
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the buffer length in bytes
func (b *Buffer) Len() int { return len(b.data) }

// Size implements Sizer
func (b *Buffer) Size() uint64 { return uint64(len(b.data)) }

// Release implements Releaser
func (b *Buffer) Release() { b.data = nil }
