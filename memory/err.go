package memory

import (
	"errors"

	"github.com/ezrec/vx16/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrSegmentRange = errors.New(f("segment out of range"))
	ErrPageLimit    = errors.New(f("page limit reached"))
)

// ErrSegment reports an access to a segment that was never allocated.
type ErrSegment struct {
	Segment uint16 // Segment id that was dereferenced.
	Count   int    // Number of allocated pages at the time.
}

func (err ErrSegment) Error() string {
	return f("segment 0x%04x not allocated (%d pages)", err.Segment, err.Count)
}

func (err ErrSegment) Unwrap() error {
	return ErrSegmentRange
}
