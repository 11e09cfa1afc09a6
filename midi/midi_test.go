package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/mki/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWriteThenReadKeepsNotes(t *testing.T) {
	notes := []model.Note{
		{Track: 0, Tempo: 120, Duration: 480, X: 0, Y: 60},
		{Track: 1, Tempo: 120, Duration: 960, X: 0, Y: 48},
		{Track: 0, Tempo: 120, Duration: 480, X: 480, Y: 64},
		{Track: 0, Tempo: 97, Duration: 240, X: 960, Y: 67},
	}
	s := model.NewScore(notes, nil, nil)

	var buf bytes.Buffer
	assert := assert.New(t)
	assert.NoError(WriteScore(&buf, s))

	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)
	assert.Len(parsed.Tracks, 3)

	assert.Equal([]model.Note{
		{Track: 0, Tempo: 120, Duration: 480, X: 0, Y: 60},
		{Track: 1, Tempo: 120, Duration: 960, X: 0, Y: 48},
		{Track: 0, Tempo: 120, Duration: 480, X: 480, Y: 64},
		{Track: 0, Tempo: 97, Duration: 240, X: 960, Y: 67},
	}, GetNotes(parsed))
}

func TestGetNotesSkipsEmptyTracksAndClosesHeldNotes(t *testing.T) {
	var conductor smf.Track
	conductor.Add(0, smf.MetaTempo(140))
	conductor.Close(0)

	var piano smf.Track
	piano.Add(0, midi.NoteOn(0, 60, 100))
	piano.Add(100, midi.NoteOn(0, 60, 100))
	piano.Add(100, midi.NoteOff(0, 60))
	piano.Add(50, midi.NoteOn(0, 72, 0)) // velocity 0 is a note off with nothing to close
	piano.Close(150)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	assert := assert.New(t)
	assert.NoError(s.Add(conductor))
	assert.NoError(s.Add(piano))

	assert.Equal([]model.Note{
		{Track: 0, Tempo: 140, Duration: 200, X: 0, Y: 60},
		{Track: 0, Tempo: 140, Duration: 300, X: 100, Y: 60},
	}, GetNotes(s))
}

func TestGetNotesDefaultsTempo(t *testing.T) {
	var tr smf.Track
	tr.Add(10, midi.NoteOn(3, 40, 90))
	tr.Add(20, midi.NoteOff(3, 40))
	tr.Close(0)

	s := smf.New()
	assert.NoError(t, s.Add(tr))
	assert.Equal(t, []model.Note{{Track: 0, Tempo: 120, Duration: 20, X: 10, Y: 40}}, GetNotes(s))
}

func TestReadScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mid")
	s := model.NewScore([]model.Note{{Track: 0, Tempo: 90, Duration: 10, X: 5, Y: 70}}, nil, nil)

	var buf bytes.Buffer
	assert := assert.New(t)
	assert.NoError(WriteScore(&buf, s))
	assert.NoError(os.WriteFile(path, buf.Bytes(), 0666))

	read, err := ReadScore(path)
	assert.NoError(err)
	assert.Equal(s, read)
}

func TestReadMidiFileErrors(t *testing.T) {
	dir := t.TempDir()
	assert := assert.New(t)

	_, err := ReadMidiFile(filepath.Join(dir, "missing.mid"))
	assert.Error(err)

	garbage := filepath.Join(dir, "garbage.mid")
	assert.NoError(os.WriteFile(garbage, []byte("this is not midi"), 0666))
	_, err = ReadMidiFile(garbage)
	assert.Error(err)
}

func TestToTick(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint32(0), toTick(-3))
	assert.Equal(uint32(2), toTick(1.5))
	assert.Equal(uint32(4294967295), toTick(1e12))
}

func TestGetNotesClosesHeldNotesInStableOrder(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(3, 64, 100))
	tr.Add(0, midi.NoteOn(1, 64, 100))
	tr.Add(0, midi.NoteOn(2, 60, 100))
	tr.Add(0, midi.NoteOn(0, 64, 100))
	tr.Add(100, midi.NoteOff(0, 64))
	tr.Close(300)

	s := smf.New()
	assert := assert.New(t)
	assert.NoError(s.Add(tr))

	want := []model.Note{
		{Track: 0, Tempo: 120, Duration: 400, X: 0, Y: 60},
		{Track: 0, Tempo: 120, Duration: 100, X: 0, Y: 64},
		{Track: 0, Tempo: 120, Duration: 400, X: 0, Y: 64},
		{Track: 0, Tempo: 120, Duration: 400, X: 0, Y: 64},
	}
	for i := 0; i < 20; i++ {
		assert.Equal(want, GetNotes(s))
	}
}

func TestCreateSkipsNotesOutsideKeyRange(t *testing.T) {
	s := model.NewScore([]model.Note{
		{Track: 0, Tempo: 120, Duration: 10, X: 0, Y: 60},
		{Track: 0, Tempo: 120, Duration: 10, X: 10, Y: 188},
		{Track: 1, Tempo: 120, Duration: 10, X: 20, Y: -1},
		{Track: 1, Tempo: 120, Duration: 10, X: 30, Y: 127},
	}, nil, nil)

	assert := assert.New(t)
	assert.Equal([]int{1, 2}, Unexportable(s))
	assert.True(IsKey(0))
	assert.False(IsKey(128))

	var buf bytes.Buffer
	assert.NoError(WriteScore(&buf, s))
	parsed, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)

	// 188 must not come back folded onto key 60
	assert.Equal([]model.Note{
		{Track: 0, Tempo: 120, Duration: 10, X: 0, Y: 60},
		{Track: 1, Tempo: 120, Duration: 10, X: 30, Y: 127},
	}, GetNotes(parsed))
}
