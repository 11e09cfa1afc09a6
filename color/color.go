package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB channels live on the 0-255 scale. Values outside that range are allowed
// while editing and only get clamped when narrowed with Bytes.
type RGB struct {
	R float64
	G float64
	B float64
}

// HSV uses degrees for H, [0, 1] for S and the same 0-255 scale as RGB for V.
type HSV struct {
	H float64
	S float64
	V float64
}

func New(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// HSV converts to the cylindrical representation. H is always in [0, 360).
func (c RGB) HSV() HSV {
	value := math.Max(c.R, math.Max(c.G, c.B))
	minv := math.Min(c.R, math.Min(c.G, c.B))
	chroma := value - minv

	var saturation float64
	if value != 0 {
		saturation = chroma / value
	}

	var hue float64
	if chroma != 0 {
		switch value {
		case c.R:
			hue = math.Mod((c.G-c.B)/chroma, 6) * 60
		case c.G:
			hue = ((c.B-c.R)/chroma + 2) * 60
		default:
			hue = ((c.R-c.G)/chroma + 4) * 60
		}
	}

	return HSV{H: normalizeHue(hue), S: saturation, V: value}
}

// RGB converts back to channels. Sectors are tested lowest first with an
// inclusive upper bound, so a hue sitting on a boundary belongs to the lower
// sector. Hues outside [0, 360] come back as gray.
func (h HSV) RGB() RGB {
	chroma := h.S * h.V
	m := h.V - chroma
	x := chroma * (1 - math.Abs(math.Mod(h.H/60, 2)-1))

	switch {
	case h.H >= 0 && h.H <= 60:
		return RGB{chroma + m, x + m, m}
	case h.H > 60 && h.H <= 120:
		return RGB{x + m, chroma + m, m}
	case h.H > 120 && h.H <= 180:
		return RGB{m, chroma + m, x + m}
	case h.H > 180 && h.H <= 240:
		return RGB{m, x + m, chroma + m}
	case h.H > 240 && h.H <= 300:
		return RGB{x + m, m, chroma + m}
	case h.H > 300 && h.H <= 360:
		return RGB{chroma + m, m, x + m}
	}
	return RGB{m, m, m}
}

// IncreaseValue brightens (or darkens, for negative delta) the color while
// keeping hue and saturation.
func (c RGB) IncreaseValue(delta float64) RGB {
	hsv := c.HSV()
	hsv.V = clamp255(hsv.V + delta)
	return hsv.RGB()
}

// Bytes clamps every channel into [0, 255] and drops the fraction.
func (c RGB) Bytes() (r, g, b uint8) {
	return uint8(clamp255(c.R)), uint8(clamp255(c.G)), uint8(clamp255(c.B))
}

// InRange reports whether every channel survives Bytes without clamping.
func (c RGB) InRange() bool {
	return inRange(c.R) && inRange(c.G) && inRange(c.B)
}

func FromBytes(r, g, b uint8) RGB {
	return RGB{R: float64(r), G: float64(g), B: float64(b)}
}

// ParseHex accepts "#rrggbb" or "#rgb".
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, err
	}
	return FromBytes(c.RGB255()), nil
}

// Hex formats the narrowed channels as "#rrggbb".
func (c RGB) Hex() string {
	r, g, b := c.Bytes()
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hex()
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// -0 and values that round up to 360 after the shift
	if h >= 360 || h == 0 {
		return 0
	}
	return h
}

func clamp255(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func inRange(x float64) bool {
	return x >= 0 && x <= 255
}
