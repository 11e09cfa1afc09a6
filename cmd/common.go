package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/mki/color"
	"github.com/jsphweid/mki/mki"
	"github.com/jsphweid/mki/model"
	"github.com/jsphweid/mki/palette"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func addOptionFlags(c *cobra.Command, opts *model.Options) {
	c.Flags().BoolVar(&opts.ColorByPart, "color-by-part", false, "color notes by track")
	c.Flags().BoolVar(&opts.DrawLine, "draw-line", false, "draw the playhead line")
	c.Flags().BoolVar(&opts.SongTime, "song-time", false, "show song time")
	c.Flags().BoolVar(&opts.InvertColor, "invert-color", false, "invert colors")
}

type paletteFlags struct {
	on   []string
	off  []string
	file string
}

func addPaletteFlags(c *cobra.Command, p *paletteFlags) {
	c.Flags().StringSliceVar(&p.on, "on", nil, "on colors, e.g. --on '#ff0000,#00ff00'")
	c.Flags().StringSliceVar(&p.off, "off", nil, "off colors")
	c.Flags().StringVar(&p.file, "palette", "", "YAML palette file")
}

// apply sets the palettes of s from, in order of preference, a palette file,
// explicit colors, or one generated hue per track.
func (p paletteFlags) apply(s *model.Score) error {
	if p.file != "" {
		f, err := os.Open(p.file)
		if err != nil {
			return errors.Wrap(err, "could not open palette")
		}
		defer f.Close()
		doc, err := palette.Read(f)
		if err != nil {
			return err
		}
		return doc.Apply(s)
	}
	if len(p.on) > 0 || len(p.off) > 0 {
		return palette.Document{On: p.on, Off: p.off}.Apply(s)
	}
	s.OnColors, s.OffColors = palette.Default(s.Derived.TrackCount)
	return nil
}

func printWarnings(path string, warnings []mki.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warn: %s: %s\n", path, w)
	}
}

func warningStrings(warnings []mki.Warning) []string {
	var res []string
	for _, w := range warnings {
		res = append(res, w.String())
	}
	return res
}

func toDocument(name string, s *model.Score, opts model.Options) model.ScoreDocument {
	notes := s.Notes
	if notes == nil {
		notes = []model.Note{}
	}
	derived := s.Derived
	colors := palette.FromScore(s)
	return model.ScoreDocument{
		Name:      name,
		Options:   opts,
		Notes:     notes,
		OnColors:  colors.On,
		OffColors: colors.Off,
		Derived:   &derived,
	}
}

func fromDocument(doc model.ScoreDocument) (*model.Score, error) {
	s := model.NewScore(doc.Notes, nil, nil)
	if err := (palette.Document{On: doc.OnColors, Off: doc.OffColors}).Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// swatch renders a color as "#rrggbb (h 120.0 s 0.80 v 255)".
func swatch(c color.RGB) string {
	hsv := c.HSV()
	return fmt.Sprintf("%s (h %5.1f s %.2f v %3.0f)", c.Hex(), hsv.H, hsv.S, hsv.V)
}
