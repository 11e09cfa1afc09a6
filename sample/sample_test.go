package sample

import (
	"testing"

	"github.com/jsphweid/mki/color"
	"github.com/jsphweid/mki/model"
	"github.com/stretchr/testify/assert"
)

func TestCreate(t *testing.T) {
	on := model.Palette{color.New(1, 2, 3)}
	s := model.NewScore([]model.Note{
		{Track: 0, X: 0, Duration: 10, Y: 60},
		{Track: 1, X: 100, Duration: 10, Y: 62},
		{Track: 0, X: 50, Duration: 10, Y: 61},
		{Track: 2, X: 120, Duration: 5, Y: 64},
		{Track: 0, X: 130, Duration: 5, Y: 65},
	}, on, nil)

	res := Create(s, 50, 3)

	assert := assert.New(t)
	assert.Equal([]model.Note{
		{Track: 1, X: 50, Duration: 10, Y: 62},
		{Track: 0, X: 0, Duration: 10, Y: 61},
		{Track: 2, X: 70, Duration: 5, Y: 64},
	}, res.Notes)
	assert.Equal(on, res.OnColors)
	assert.Equal(model.Derived{TrackCount: 3, PitchMin: 61, PitchMax: 64, LastTick: 75}, res.Derived)

	// the source is untouched
	assert.Equal(100.0, s.Notes[1].X)
}

func TestCreatePastEnd(t *testing.T) {
	s := model.NewScore([]model.Note{{X: 1}}, nil, nil)
	res := Create(s, 10, 5)
	assert.Empty(t, res.Notes)
	assert.Equal(t, model.Derived{}, res.Derived)
}
