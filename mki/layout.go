package mki

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
)

const (
	separator     = '|'
	noteSeparator = '~'

	reservedByte = 0x00
	fillerByte   = 0xFF
)

type kind int

const (
	// marker bytes are written as-is and checked on read
	marker kind = iota
	// padding bytes are written as-is and skipped on read
	padding
	// unsigned little-endian integer, narrowed to width on write
	unsigned
	// IEEE-754 double carried as its bit pattern
	float
)

type field struct {
	name  string
	width int
	kind  kind
	fixed byte
}

// layout is one fixed-width record. pack and unpack are the only places that
// touch raw bytes; every section of a file is described by one of the tables
// below.
type layout []field

// header, then the palette A marker
var headerLayout = layout{
	{name: "header", width: 1, kind: marker, fixed: separator},
	{name: "options", width: 1, kind: unsigned},
	{name: "note count", width: 4, kind: unsigned},
	{name: "palette count", width: 4, kind: unsigned},
	{name: "palette A", width: 1, kind: marker, fixed: separator},
}

var onColorLayout = colorLayout(reservedByte)

var offColorLayout = colorLayout(fillerByte)

var paletteBLayout = layout{
	{name: "palette B", width: 1, kind: marker, fixed: separator},
}

var notesLayout = layout{
	{name: "notes", width: 1, kind: marker, fixed: separator},
}

var noteLayout = layout{
	{name: "marker", width: 1, kind: marker, fixed: noteSeparator},
	{name: "track", width: 1, kind: unsigned},
	{name: "tempo", width: 2, kind: unsigned},
	{name: "duration", width: 8, kind: float},
	{name: "x", width: 8, kind: float},
	{name: "y", width: 1, kind: unsigned},
}

// colorLayout is R, G, B in stream order followed by a byte the reader ignores.
func colorLayout(last byte) layout {
	return layout{
		{name: "red", width: 1, kind: unsigned},
		{name: "green", width: 1, kind: unsigned},
		{name: "blue", width: 1, kind: unsigned},
		{name: "alpha", width: 1, kind: padding, fixed: last},
	}
}

func (l layout) size() int {
	var n int
	for _, f := range l {
		n += f.width
	}
	return n
}

// pack appends one record to buf. vals holds one value per unsigned or float
// field, in table order; floats are passed as math.Float64bits.
func (l layout) pack(buf []byte, vals ...uint64) []byte {
	var scratch [8]byte
	i := 0
	for _, f := range l {
		switch f.kind {
		case marker, padding:
			buf = append(buf, f.fixed)
		default:
			binary.LittleEndian.PutUint64(scratch[:], vals[i])
			buf = append(buf, scratch[:f.width]...)
			i++
		}
	}
	return buf
}

// unpack reads one record and returns the values of its unsigned and float
// fields. section prefixes the checkpoint named in any error.
func (l layout) unpack(r *bytes.Reader, total int, section string) ([]uint64, error) {
	var scratch [8]byte
	vals := make([]uint64, 0, len(l))
	for _, f := range l {
		offset := total - r.Len()
		buf := scratch[:f.width]
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, &FormatError{
				Err:        ErrUnexpectedEOF,
				Checkpoint: checkpoint(section, f.name),
				Offset:     offset,
			}
		}

		switch f.kind {
		case marker:
			if buf[0] != f.fixed {
				name := f.name
				if section != "" {
					name = section
				}
				return nil, &FormatError{
					Err:        ErrInvalidMarker,
					Checkpoint: name,
					Offset:     offset,
					Got:        buf[0],
					Want:       f.fixed,
				}
			}
		case padding:
		default:
			var wide [8]byte
			copy(wide[:], buf)
			vals = append(vals, binary.LittleEndian.Uint64(wide[:]))
		}
	}
	return vals, nil
}

func checkpoint(section, name string) string {
	return strings.TrimSpace(section + " " + name)
}
