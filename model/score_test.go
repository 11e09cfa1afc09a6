package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	notes := []Note{
		{Track: 2, Duration: 10, X: 100, Y: 64},
		{Track: 0, Duration: 500, X: 0, Y: 70},
		{Track: 5, Duration: 3, X: 40, Y: 40},
		{Track: 1, Duration: 2, X: 50, Y: 62},
	}

	assert := assert.New(t)
	assert.Equal(Derived{TrackCount: 6, PitchMin: 40, PitchMax: 70, LastTick: 52}, Summarize(notes))
}

func TestSummarizeMinFollowsLowerNotes(t *testing.T) {
	// a later, lower note must pull the minimum down
	d := Summarize([]Note{{Y: 60}, {Y: 72}, {Y: 30}})
	assert.Equal(t, 30, d.PitchMin)
	assert.Equal(t, 72, d.PitchMax)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Derived{}, Summarize(nil))
}

func TestRecompute(t *testing.T) {
	s := NewScore([]Note{{Track: 0, Y: 10, X: 1, Duration: 1}}, nil, nil)
	s.Notes = append(s.Notes, Note{Track: 3, Y: 5, X: 2, Duration: 2})

	assert := assert.New(t)
	assert.Equal(1, s.Derived.TrackCount)
	s.Recompute()
	assert.Equal(Derived{TrackCount: 4, PitchMin: 5, PitchMax: 10, LastTick: 4}, s.Derived)
}

func TestTracks(t *testing.T) {
	s := NewScore([]Note{{Track: 3, Y: 1}, {Track: 1, Y: 2}, {Track: 3, Y: 3}}, nil, nil)

	assert := assert.New(t)
	assert.Equal([]int{1, 3}, s.Tracks())
	assert.Equal([]Note{{Track: 3, Y: 1}, {Track: 3, Y: 3}}, s.NotesOnTrack(3))
	assert.Nil(s.NotesOnTrack(7))
}
