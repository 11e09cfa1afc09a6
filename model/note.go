package model

import "github.com/jsphweid/mki/color"

// Note is a single performed note. Track and Y are meant to fit in a byte and
// Tempo in 16 bits; wider values are narrowed when the note gets saved.
type Note struct {
	Track    int     `json:"track" yaml:"track"`
	Tempo    int     `json:"tempo" yaml:"tempo"`
	Duration float64 `json:"duration" yaml:"duration"`
	X        float64 `json:"x" yaml:"x"`
	Y        int     `json:"y" yaml:"y"`
}

// End is the tick at which the note stops sounding.
func (n Note) End() float64 {
	return n.X + n.Duration
}

type Palette = []color.RGB
