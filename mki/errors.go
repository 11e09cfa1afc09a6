package mki

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMarker = errors.New("invalid marker")
	ErrUnexpectedEOF = errors.New("unexpected end of data")
	ErrInvalidLength = errors.New("invalid length")
)

// FormatError describes why a buffer is not a readable score file. Use
// errors.Is with the Err* values to tell the kinds apart.
type FormatError struct {
	Err error
	// Checkpoint names the marker or field where decoding stopped,
	// e.g. "palette B", "note count" or "note 3 tempo".
	Checkpoint string
	Offset     int

	// set for ErrInvalidMarker
	Got  byte
	Want byte

	// set for ErrInvalidLength
	Length int64
}

func (e *FormatError) Error() string {
	switch e.Err {
	case ErrInvalidMarker:
		return fmt.Sprintf("mki: %v at %s (offset %d): got 0x%02x, want 0x%02x",
			e.Err, e.Checkpoint, e.Offset, e.Got, e.Want)
	case ErrInvalidLength:
		return fmt.Sprintf("mki: %v for %s (offset %d): %d", e.Err, e.Checkpoint, e.Offset, e.Length)
	}
	return fmt.Sprintf("mki: %v reading %s (offset %d)", e.Err, e.Checkpoint, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
