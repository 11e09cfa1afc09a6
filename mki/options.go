package mki

import "github.com/jsphweid/mki/model"

// Option bits, LSB first. The top four bits of the byte are unused.
const (
	flagInvertColor = 1 << iota
	flagSongTime
	flagDrawLine
	flagColorByPart
)

func packOptions(o model.Options) byte {
	var b byte
	if o.ColorByPart {
		b |= flagColorByPart
	}
	if o.DrawLine {
		b |= flagDrawLine
	}
	if o.SongTime {
		b |= flagSongTime
	}
	if o.InvertColor {
		b |= flagInvertColor
	}
	return b
}

func unpackOptions(b byte) model.Options {
	return model.Options{
		ColorByPart: b&flagColorByPart != 0,
		DrawLine:    b&flagDrawLine != 0,
		SongTime:    b&flagSongTime != 0,
		InvertColor: b&flagInvertColor != 0,
	}
}
