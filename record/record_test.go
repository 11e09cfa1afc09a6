package record

import (
	"sync"
	"testing"

	"github.com/jsphweid/mki/model"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	// 120 bpm at 480 ticks per quarter is 960 ticks per second
	r := New(120, 480)

	r.NoteStart(0, 60, 1000)
	r.NoteStart(1, 48, 1500)
	assert := assert.New(t)
	assert.True(r.NoteEnd(0, 60, 2000))
	assert.False(r.NoteEnd(0, 61, 2000))
	assert.Equal(1, r.Held())

	s := r.Score(nil, nil)
	assert.Equal([]model.Note{{Track: 0, Tempo: 120, Duration: 960, X: 0, Y: 60}}, s.Notes)

	assert.True(r.NoteEnd(1, 48, 2500))
	s = r.Score(nil, nil)
	assert.Equal([]model.Note{
		{Track: 0, Tempo: 120, Duration: 960, X: 0, Y: 60},
		{Track: 1, Tempo: 120, Duration: 960, X: 480, Y: 48},
	}, s.Notes)
	assert.Equal(model.Derived{TrackCount: 2, PitchMin: 48, PitchMax: 60, LastTick: 1440}, s.Derived)
}

func TestRetriggerClosesPreviousNote(t *testing.T) {
	r := New(60, 1000)
	r.NoteStart(2, 70, 0)
	r.NoteStart(2, 70, 500)
	r.NoteEnd(2, 70, 750)

	assert.Equal(t, []model.Note{
		{Track: 2, Tempo: 60, Duration: 500, X: 0, Y: 70},
		{Track: 2, Tempo: 60, Duration: 250, X: 500, Y: 70},
	}, r.Score(nil, nil).Notes)
}

func TestRecorderConcurrentUse(t *testing.T) {
	r := New(120, 480)
	var wg sync.WaitGroup
	for ch := uint8(0); ch < 8; ch++ {
		wg.Add(1)
		go func(ch uint8) {
			defer wg.Done()
			for i := int32(0); i < 50; i++ {
				r.NoteStart(ch, 60, i*10)
				r.NoteEnd(ch, 60, i*10+5)
				r.Score(nil, nil)
			}
		}(ch)
	}
	wg.Wait()

	assert.Len(t, r.Score(nil, nil).Notes, 400)
	assert.Equal(t, 0, r.Held())
}
