/*
Package mki reads and writes score files (.mki).

A score file is a header followed by two color palettes and the notes, each
section opened by a '|' marker byte. All integers are little-endian:

	'|' options:u8 noteCount:i32 paletteCount:i32
	'|' paletteCount × (r g b 0x00)
	'|' paletteCount × (r g b 0xFF)
	'|' noteCount × ('~' track:u8 tempo:u16 duration:f64 x:f64 y:u8)

The options byte holds, from bit 3 down to bit 0: colorByPart, drawLine,
songTime, invertColor. There is no version field; the leading marker is the
only thing identifying the format.
*/
package mki
