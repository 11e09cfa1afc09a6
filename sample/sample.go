package sample

import (
	"github.com/jsphweid/mki/model"
)

// Create returns a new score holding at most maxNotes notes starting at or
// after fromTick, shifted so the excerpt starts at tick 0. Palettes are
// shared with the source score.
func Create(s *model.Score, fromTick float64, maxNotes int) *model.Score {
	var notes []model.Note
	for _, n := range s.Notes {
		if n.X < fromTick {
			continue
		}
		if len(notes) >= maxNotes {
			break
		}
		n.X -= fromTick
		notes = append(notes, n)
	}
	return model.NewScore(notes, s.OnColors, s.OffColors)
}
