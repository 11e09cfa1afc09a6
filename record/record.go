package record

import (
	"sort"
	"sync"

	"github.com/jsphweid/mki/model"
)

type key struct {
	channel uint8
	note    uint8
}

// Recorder collects notes from live note start/end events. Timestamps are in
// milliseconds and are converted to ticks at a fixed tempo; the first event
// received is tick 0. Channels become tracks. It is safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	tempo      int
	resolution int

	started bool
	origin  int32
	pressed map[key]float64
	notes   []model.Note
}

func New(tempo, resolution int) *Recorder {
	return &Recorder{
		tempo:      tempo,
		resolution: resolution,
		pressed:    make(map[key]float64),
	}
}

func (r *Recorder) tick(ms int32) float64 {
	if !r.started {
		r.started = true
		r.origin = ms
	}
	return float64(ms-r.origin) * float64(r.tempo) * float64(r.resolution) / 60000
}

func (r *Recorder) NoteStart(channel, note uint8, ms int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{channel, note}
	now := r.tick(ms)
	// a retrigger without a release ends the previous note
	r.finish(k, now)
	r.pressed[k] = now
}

// NoteEnd reports whether a held note was completed.
func (r *Recorder) NoteEnd(channel, note uint8, ms int32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finish(key{channel, note}, r.tick(ms))
}

func (r *Recorder) finish(k key, now float64) bool {
	start, ok := r.pressed[k]
	if !ok {
		return false
	}
	delete(r.pressed, k)
	r.notes = append(r.notes, model.Note{
		Track:    int(k.channel),
		Tempo:    r.tempo,
		Duration: now - start,
		X:        start,
		Y:        int(k.note),
	})
	return true
}

// Held is the number of notes started but not yet ended.
func (r *Recorder) Held() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pressed)
}

// Score returns the completed notes ordered by start tick.
func (r *Recorder) Score(on, off model.Palette) *model.Score {
	r.mu.Lock()
	notes := append([]model.Note(nil), r.notes...)
	r.mu.Unlock()

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].X < notes[j].X
	})
	return model.NewScore(notes, on, off)
}
