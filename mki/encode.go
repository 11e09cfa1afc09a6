package mki

import (
	"fmt"
	"math"

	"github.com/jsphweid/mki/model"
)

type WarningKind int

const (
	// a note field did not fit its width and was narrowed
	FieldTruncated WarningKind = iota
	// only palette A's length is stored, so a shorter or longer palette B
	// will not read back correctly
	PaletteLengthMismatch
)

// Warning reports data that was saved, but not exactly as given.
type Warning struct {
	Kind  WarningKind
	Note  int
	Field string
	// Value is what the note held, Stored is what the file holds
	Value  int
	Stored int
}

func (w Warning) String() string {
	if w.Kind == PaletteLengthMismatch {
		return fmt.Sprintf("palette lengths differ (on: %d, off: %d); off colors will not load back correctly",
			w.Value, w.Stored)
	}
	return fmt.Sprintf("note %d: %s %d exceeds file limits, stored as %d", w.Note, w.Field, w.Value, w.Stored)
}

// EncodedSize is the exact length Encode produces for s.
func EncodedSize(s *model.Score) int {
	if s == nil {
		s = &model.Score{}
	}
	return headerLayout.size() +
		len(s.OnColors)*onColorLayout.size() +
		paletteBLayout.size() +
		len(s.OffColors)*offColorLayout.size() +
		notesLayout.size() +
		len(s.Notes)*noteLayout.size()
}

// Encode serializes a score and its options. It never fails: values that do
// not fit their field are narrowed and reported in the returned warnings.
func Encode(s *model.Score, opts model.Options) ([]byte, []Warning) {
	if s == nil {
		s = &model.Score{}
	}

	var warnings []Warning
	if len(s.OnColors) != len(s.OffColors) {
		warnings = append(warnings, Warning{
			Kind:   PaletteLengthMismatch,
			Note:   -1,
			Value:  len(s.OnColors),
			Stored: len(s.OffColors),
		})
	}

	buf := make([]byte, 0, EncodedSize(s))
	buf = headerLayout.pack(buf,
		uint64(packOptions(opts)),
		uint64(uint32(int32(len(s.Notes)))),
		uint64(uint32(int32(len(s.OnColors)))),
	)

	for _, c := range s.OnColors {
		r, g, b := c.Bytes()
		buf = onColorLayout.pack(buf, uint64(r), uint64(g), uint64(b))
	}
	buf = paletteBLayout.pack(buf)
	for _, c := range s.OffColors {
		r, g, b := c.Bytes()
		buf = offColorLayout.pack(buf, uint64(r), uint64(g), uint64(b))
	}
	buf = notesLayout.pack(buf)

	for i, n := range s.Notes {
		warnings = append(warnings, checkNote(i, n)...)
		buf = noteLayout.pack(buf,
			uint64(n.Track),
			uint64(n.Tempo),
			math.Float64bits(n.Duration),
			math.Float64bits(n.X),
			uint64(n.Y),
		)
	}

	return buf, warnings
}

func checkNote(i int, n model.Note) []Warning {
	var res []Warning
	if n.Track != int(uint8(n.Track)) {
		res = append(res, truncated(i, "track", n.Track, int(uint8(n.Track))))
	}
	if n.Tempo != int(uint16(n.Tempo)) {
		res = append(res, truncated(i, "tempo", n.Tempo, int(uint16(n.Tempo))))
	}
	if n.Y != int(uint8(n.Y)) {
		res = append(res, truncated(i, "y", n.Y, int(uint8(n.Y))))
	}
	return res
}

func truncated(i int, name string, value, stored int) Warning {
	return Warning{Kind: FieldTruncated, Note: i, Field: name, Value: value, Stored: stored}
}

// NoteRecordSize is the number of bytes each note takes in a file.
var NoteRecordSize = noteLayout.size()
