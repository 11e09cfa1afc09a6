package midi

import (
	"bytes"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// resolution used for exported files
const ticksPerQuarter = 960

const velocity = 100

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("midi parser panicked on %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file...")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing midi file...")
	}
	return res, nil
}

// ReadScore loads a MIDI file as a score with empty palettes.
func ReadScore(filepath string) (*model.Score, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	return model.NewScore(GetNotes(s), nil, nil), nil
}

type tempoChange struct {
	tick int64
	bpm  float64
}

type tempoMap []tempoChange

func (m tempoMap) at(tick int64) int {
	bpm := float64(constants.DefaultTempo)
	for _, c := range m {
		if c.tick > tick {
			break
		}
		bpm = c.bpm
	}
	return int(math.Round(bpm))
}

func getTempoMap(s *smf.SMF) tempoMap {
	var res tempoMap
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var bpm float64
			if event.Message.GetMetaTempo(&bpm) {
				res = append(res, tempoChange{tick: absTicks, bpm: bpm})
			}
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].tick < res[j].tick
	})
	return res
}

type pressedKey struct {
	channel uint8
	key     uint8
}

// GetNotes pairs note starts with note ends. Tracks without notes are skipped
// so the first track holding notes becomes track 0. Notes still held when
// their track ends are closed there. The result is ordered by start tick,
// then track, pitch and duration.
func GetNotes(s *smf.SMF) []model.Note {
	tempos := getTempoMap(s)

	var notes []model.Note
	track := 0
	for _, events := range s.Tracks {
		var absTicks int64
		var trackNotes []model.Note
		pressed := make(map[pressedKey][]int64)

		closeNote := func(k pressedKey, end int64) {
			starts := pressed[k]
			if len(starts) == 0 {
				return
			}
			start := starts[0]
			pressed[k] = starts[1:]
			trackNotes = append(trackNotes, model.Note{
				Track:    track,
				Tempo:    tempos.at(start),
				Duration: float64(end - start),
				X:        float64(start),
				Y:        int(k.key),
			})
		}

		for _, event := range events {
			absTicks += int64(event.Delta)
			msg := midi.Message(event.Message)
			var channel, key, vel uint8
			switch {
			case msg.GetNoteStart(&channel, &key, &vel):
				k := pressedKey{channel, key}
				pressed[k] = append(pressed[k], absTicks)
			case msg.GetNoteEnd(&channel, &key):
				closeNote(pressedKey{channel, key}, absTicks)
			}
		}

		held := make([]pressedKey, 0, len(pressed))
		for k := range pressed {
			held = append(held, k)
		}
		sort.Slice(held, func(i, j int) bool {
			if held[i].channel != held[j].channel {
				return held[i].channel < held[j].channel
			}
			return held[i].key < held[j].key
		})
		for _, k := range held {
			for len(pressed[k]) > 0 {
				closeNote(k, absTicks)
			}
		}

		if len(trackNotes) > 0 {
			notes = append(notes, trackNotes...)
			track++
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].X != notes[j].X {
			return notes[i].X < notes[j].X
		}
		if notes[i].Track != notes[j].Track {
			return notes[i].Track < notes[j].Track
		}
		if notes[i].Y != notes[j].Y {
			return notes[i].Y < notes[j].Y
		}
		return notes[i].Duration < notes[j].Duration
	})
	return notes
}

type timedMessage struct {
	tick uint32
	msg  []byte
	// note offs sort before note ons on the same tick
	order int
}

// IsKey reports whether a pitch lane is a valid MIDI key.
func IsKey(y int) bool {
	return y >= 0 && y <= 127
}

// Unexportable returns the indexes of notes whose pitch lane is not a MIDI
// key. Create leaves them out.
func Unexportable(s *model.Score) []int {
	var res []int
	for i, n := range s.Notes {
		if !IsKey(n.Y) {
			res = append(res, i)
		}
	}
	return res
}

// Create builds a format 1 SMF: a conductor track with the tempo changes and
// one track per score track. Track numbers map to MIDI channels modulo 16.
// Notes outside the MIDI key range are skipped.
func Create(s *model.Score) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var conductor []timedMessage
	lastTempo := -1
	byStart := append([]model.Note(nil), s.Notes...)
	sort.SliceStable(byStart, func(i, j int) bool {
		return byStart[i].X < byStart[j].X
	})
	for _, n := range byStart {
		if n.Tempo != lastTempo && n.Tempo > 0 {
			conductor = append(conductor, timedMessage{tick: toTick(n.X), msg: smf.MetaTempo(float64(n.Tempo))})
			lastTempo = n.Tempo
		}
	}
	if err := res.Add(buildTrack(conductor)); err != nil {
		return nil, errors.Wrap(err, "could not add tempo track")
	}

	for _, t := range s.Tracks() {
		var msgs []timedMessage
		channel := uint8(t % 16)
		for _, n := range s.NotesOnTrack(t) {
			if !IsKey(n.Y) {
				continue
			}
			key := uint8(n.Y)
			msgs = append(msgs,
				timedMessage{tick: toTick(n.X), msg: midi.NoteOn(channel, key, velocity), order: 1},
				timedMessage{tick: toTick(n.End()), msg: midi.NoteOff(channel, key)},
			)
		}
		if err := res.Add(buildTrack(msgs)); err != nil {
			return nil, errors.Wrapf(err, "could not add track %d", t)
		}
	}
	return res, nil
}

// WriteScore writes the notes of s as a standard MIDI file.
func WriteScore(w io.Writer, s *model.Score) error {
	res, err := Create(s)
	if err != nil {
		return err
	}
	if _, err := res.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write midi file")
	}
	return nil
}

func buildTrack(msgs []timedMessage) smf.Track {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].order < msgs[j].order
	})

	var track smf.Track
	var last uint32
	for _, m := range msgs {
		track.Add(m.tick-last, m.msg)
		last = m.tick
	}
	track.Close(0)
	return track
}

func toTick(x float64) uint32 {
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	if x >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(math.Round(x))
}
