// ABOUTME: Sentinel errors for collector usage violations
// ABOUTME: Callers match these with errors.Is

package gc

import "errors"

var (
	// ErrNotPinned is returned by Unpin when the object has no pin entry.
	// It always indicates a pin/unpin mismatch in the caller.
	ErrNotPinned = errors.New("gc: unpin without matching pin")

	// ErrAlreadyTracked is returned when an object is registered twice
	ErrAlreadyTracked = errors.New("gc: object already tracked")

	// ErrNotTracked is returned when a root or pin names an object this
	// collector does not own
	ErrNotTracked = errors.New("gc: object not tracked by this collector")

	// ErrNilObject is returned when a nil object is passed to the collector
	ErrNilObject = errors.New("gc: nil object")

	// ErrClosed is returned by Track after Close
	ErrClosed = errors.New("gc: collector closed")

	// ErrInvalidSize is returned by NewBuffer for a negative length
	ErrInvalidSize = errors.New("gc: invalid buffer size")
)
