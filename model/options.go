package model

// Options are display preferences saved alongside a score. The codec only
// stores them; what they mean is up to the renderer.
type Options struct {
	ColorByPart bool `json:"colorByPart"`
	DrawLine    bool `json:"drawLine"`
	SongTime    bool `json:"songTime"`
	InvertColor bool `json:"invertColor"`
}
