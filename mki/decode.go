package mki

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jsphweid/mki/color"
	"github.com/jsphweid/mki/model"
)

// Decode parses a score file. On error no score is returned.
//
// Palette B is read with palette A's count; the format stores only one.
func Decode(data []byte) (*model.Score, model.Options, error) {
	r := bytes.NewReader(data)
	total := len(data)

	head, err := headerLayout.unpack(r, total, "")
	if err != nil {
		return nil, model.Options{}, err
	}
	opts := unpackOptions(byte(head[0]))
	noteCount := int64(int32(uint32(head[1])))
	colorCount := int64(int32(uint32(head[2])))

	if noteCount < 0 {
		return nil, model.Options{}, &FormatError{Err: ErrInvalidLength, Checkpoint: "note count", Offset: 2, Length: noteCount}
	}
	if colorCount < 0 {
		return nil, model.Options{}, &FormatError{Err: ErrInvalidLength, Checkpoint: "palette count", Offset: 6, Length: colorCount}
	}

	// refuse counts the buffer cannot possibly hold before allocating for them
	need := colorCount*int64(onColorLayout.size()+offColorLayout.size()) +
		int64(paletteBLayout.size()+notesLayout.size()) +
		noteCount*int64(noteLayout.size())
	if need > int64(r.Len()) {
		return nil, model.Options{}, &FormatError{
			Err:        ErrUnexpectedEOF,
			Checkpoint: fmt.Sprintf("body (%d bytes declared, %d available)", need, r.Len()),
			Offset:     total - r.Len(),
		}
	}

	on, err := readPalette(r, total, onColorLayout, "palette A", colorCount)
	if err != nil {
		return nil, model.Options{}, err
	}
	if _, err := paletteBLayout.unpack(r, total, ""); err != nil {
		return nil, model.Options{}, err
	}
	off, err := readPalette(r, total, offColorLayout, "palette B", colorCount)
	if err != nil {
		return nil, model.Options{}, err
	}
	if _, err := notesLayout.unpack(r, total, ""); err != nil {
		return nil, model.Options{}, err
	}

	var notes []model.Note
	if noteCount > 0 {
		notes = make([]model.Note, 0, noteCount)
	}
	for i := int64(0); i < noteCount; i++ {
		vals, err := noteLayout.unpack(r, total, fmt.Sprintf("note %d", i))
		if err != nil {
			return nil, model.Options{}, err
		}
		notes = append(notes, model.Note{
			Track:    int(uint8(vals[0])),
			Tempo:    int(uint16(vals[1])),
			Duration: math.Float64frombits(vals[2]),
			X:        math.Float64frombits(vals[3]),
			Y:        int(uint8(vals[4])),
		})
	}

	return model.NewScore(notes, on, off), opts, nil
}

func readPalette(r *bytes.Reader, total int, l layout, name string, count int64) (model.Palette, error) {
	var res model.Palette
	for i := int64(0); i < count; i++ {
		vals, err := l.unpack(r, total, fmt.Sprintf("%s %d", name, i))
		if err != nil {
			return nil, err
		}
		res = append(res, color.FromBytes(uint8(vals[0]), uint8(vals[1]), uint8(vals[2])))
	}
	return res, nil
}
