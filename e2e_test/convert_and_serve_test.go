//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/mki/cmd"
	"github.com/jsphweid/mki/midi"
	"github.com/jsphweid/mki/model"
	"github.com/stretchr/testify/assert"
)

var fixtureNotes = []model.Note{
	{Track: 0, Tempo: 120, Duration: 960, X: 0, Y: 60},
	{Track: 0, Tempo: 120, Duration: 960, X: 0, Y: 64},
	{Track: 0, Tempo: 120, Duration: 960, X: 0, Y: 67},
	{Track: 1, Tempo: 120, Duration: 480, X: 960, Y: 65},
}

func writeFixture(dir string) {
	f, err := os.Create(filepath.Join(dir, "chords.mid"))
	if err != nil {
		panic(err.Error())
	}
	defer f.Close()
	if err := midi.WriteScore(f, model.NewScore(fixtureNotes, nil, nil)); err != nil {
		panic(err.Error())
	}
}

func TestMain(m *testing.M) {
	media, err := os.MkdirTemp("", "mki-media")
	if err != nil {
		panic(err.Error())
	}
	out, err := os.MkdirTemp("", "mki-out")
	if err != nil {
		panic(err.Error())
	}
	os.Setenv("MEDIA_PATH", media)
	os.Setenv("MKI_DIR", out)
	os.Setenv("MKI_METADATA_ENDPOINT", "")

	writeFixture(media)
	cmd.Convert(1)
	cmd.LoadServeFiles()

	exitVal := m.Run()

	os.RemoveAll(media)
	os.RemoveAll(out)
	os.Exit(exitVal)
}

func get(path string) (*http.Response, []byte) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody
}

func TestListConvertedE2E(t *testing.T) {
	resp, body := get("/scores")

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var listings []model.ScoreListing
	err := json.Unmarshal(body, &listings)
	if err != nil {
		panic(err.Error())
	}
	assert.Len(listings, 1)
	assert.Equal("chords", listings[0].Name)
}

func TestGetConvertedE2E(t *testing.T) {
	resp, body := get("/scores/chords")

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var doc model.ScoreDocument
	err := json.Unmarshal(body, &doc)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(fixtureNotes, doc.Notes)
	assert.Len(doc.OnColors, 2)
	assert.Len(doc.OffColors, 2)
	assert.Equal(&model.Derived{TrackCount: 2, PitchMin: 60, PitchMax: 67, LastTick: 1440}, doc.Derived)
}

func TestSampleConvertedE2E(t *testing.T) {
	resp, body := get("/scores/chords/sample?from=960")

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var doc model.ScoreDocument
	err := json.Unmarshal(body, &doc)
	if err != nil {
		panic(err.Error())
	}
	assert.Equal([]model.Note{{Track: 1, Tempo: 120, Duration: 480, X: 0, Y: 65}}, doc.Notes)
}
