package model

import "github.com/jsphweid/mki/util"

// Derived holds aggregates computed from the note sequence. They are never
// saved; Recompute rebuilds them whenever the notes change.
type Derived struct {
	// TrackCount is the highest track index seen plus one
	TrackCount int     `json:"trackCount"`
	PitchMin   int     `json:"pitchMin"`
	PitchMax   int     `json:"pitchMax"`
	LastTick   float64 `json:"lastTick"`
}

type Score struct {
	Notes     []Note
	OnColors  Palette
	OffColors Palette

	Derived Derived
}

func NewScore(notes []Note, on, off Palette) *Score {
	s := &Score{Notes: notes, OnColors: on, OffColors: off}
	s.Recompute()
	return s
}

func (s *Score) Recompute() {
	s.Derived = Summarize(s.Notes)
}

// Summarize walks the notes once. The first note seeds the pitch bounds and
// LastTick comes from the final note in sequence order, not the latest ending.
func Summarize(notes []Note) Derived {
	var d Derived
	if len(notes) == 0 {
		return d
	}

	maxTrack := notes[0].Track
	d.PitchMin = notes[0].Y
	d.PitchMax = notes[0].Y
	for _, n := range notes {
		maxTrack = util.Max(maxTrack, n.Track)
		d.PitchMin = util.Min(d.PitchMin, n.Y)
		d.PitchMax = util.Max(d.PitchMax, n.Y)
	}
	d.TrackCount = maxTrack + 1
	d.LastTick = notes[len(notes)-1].End()
	return d
}

// Tracks returns the distinct track indexes in ascending order.
func (s *Score) Tracks() []int {
	seen := make(map[int]bool)
	for _, n := range s.Notes {
		seen[n.Track] = true
	}
	tracks := util.GetKeys(seen)
	util.SortAsc(tracks)
	return tracks
}

// NotesOnTrack returns the notes of one track, keeping their file order.
func (s *Score) NotesOnTrack(track int) []Note {
	var res []Note
	for _, n := range s.Notes {
		if n.Track == track {
			res = append(res, n)
		}
	}
	return res
}
