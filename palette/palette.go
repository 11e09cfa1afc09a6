package palette

import (
	"io"

	"github.com/jsphweid/mki/color"
	"github.com/jsphweid/mki/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a score's two palettes:
//
//	on:
//	  - "#ff0000"
//	off:
//	  - "#400000"
type Document struct {
	On  []string `yaml:"on"`
	Off []string `yaml:"off"`
}

func FromScore(s *model.Score) Document {
	return Document{On: toHex(s.OnColors), Off: toHex(s.OffColors)}
}

// Apply replaces the palettes of s.
func (d Document) Apply(s *model.Score) error {
	on, err := fromHex(d.On)
	if err != nil {
		return errors.Wrap(err, "on palette")
	}
	off, err := fromHex(d.Off)
	if err != nil {
		return errors.Wrap(err, "off palette")
	}
	s.OnColors = on
	s.OffColors = off
	return nil
}

func Read(r io.Reader) (Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
		return Document{}, errors.Wrap(err, "could not parse palette")
	}
	return d, nil
}

func (d Document) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(err, "could not write palette")
	}
	return enc.Close()
}

func toHex(p model.Palette) []string {
	res := make([]string, 0, len(p))
	for _, c := range p {
		res = append(res, c.Hex())
	}
	return res
}

func fromHex(hex []string) (model.Palette, error) {
	var res model.Palette
	for i, h := range hex {
		c, err := color.ParseHex(h)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d (%q)", i, h)
		}
		res = append(res, c)
	}
	return res, nil
}

// Default spreads n hues evenly around the wheel: bright for the on palette,
// dimmed for the off palette.
func Default(n int) (on, off model.Palette) {
	for i := 0; i < n; i++ {
		h := 360 * float64(i) / float64(n)
		on = append(on, color.HSV{H: h, S: 0.8, V: 255}.RGB())
		off = append(off, color.HSV{H: h, S: 0.8, V: 110}.RGB())
	}
	return on, off
}
