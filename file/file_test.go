package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/jsphweid/mki/color"
	"github.com/jsphweid/mki/mki"
	"github.com/jsphweid/mki/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"song":               "song.mki",
		"Song.MKI":           "song.mki",
		"song.mki":           "song.mki",
		"song.mid":           "song.mid.mki",
		"Some/Dir/Track.Mki": "Some/Dir/track.mki",
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizePath(in))
		})
	}
}

func TestNormalizePathNamesUnnamedFiles(t *testing.T) {
	r := regexp.MustCompile(`^dir/untitled-[0-9a-f]{8}-([0-9a-f]{4}-){3}[0-9a-f]{12}\.mki$`)

	assert := assert.New(t)
	assert.Regexp(r, NormalizePath("dir/"))
	assert.Regexp(r, NormalizePath("dir/.MKI"))
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s := model.NewScore(
		[]model.Note{{Track: 0, Tempo: 120, Duration: 480, X: 0, Y: 60}, {Track: 1, Tempo: 120, Duration: 240, X: 480, Y: 64}},
		model.Palette{color.New(255, 0, 0), color.New(0, 0, 255)},
		model.Palette{color.New(80, 0, 0), color.New(0, 0, 80)},
	)
	opts := model.Options{DrawLine: true, SongTime: true}

	path, warnings, err := Save(filepath.Join(dir, "Song"), s, opts)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(warnings)
	assert.Equal(filepath.Join(dir, "song.mki"), path)

	loaded, loadedOpts, err := Load(path)
	assert.NoError(err)
	assert.Equal(s, loaded)
	assert.Equal(opts, loadedOpts)

	paths, err := GatherScorePaths(dir)
	assert.NoError(err)
	assert.Equal([]string{path}, paths)
}

func TestSaveReturnsWarnings(t *testing.T) {
	s := model.NewScore([]model.Note{{Track: 256}}, nil, nil)
	_, warnings, err := Save(filepath.Join(t.TempDir(), "wide"), s, model.Options{})

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(warnings, 1)
}

func TestSaveToMissingDirFails(t *testing.T) {
	_, _, err := Save(filepath.Join(t.TempDir(), "missing", "song"), model.NewScore(nil, nil, nil), model.Options{})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.mki"))

	assert := assert.New(t)
	assert.Error(err)
	assert.True(errors.Is(err, os.ErrNotExist))
}

func TestLoadCorruptFileKeepsFormatError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mki")
	assert.NoError(t, os.WriteFile(path, []byte("not a score"), 0666))

	_, _, err := Load(path)
	assert := assert.New(t)
	assert.True(errors.Is(err, mki.ErrInvalidMarker))
	assert.True(strings.Contains(err.Error(), path))
}

func TestReadRejectsOversizedInput(t *testing.T) {
	big := bytes.NewReader(make([]byte, 64*1024*1024+1))
	_, _, err := Read(big, "big")
	assert.Error(t, err)
}

func TestReadTooLargeIsDistinguishable(t *testing.T) {
	big := bytes.NewReader(make([]byte, 64*1024*1024+1))
	_, _, err := Read(big, "big")

	assert := assert.New(t)
	assert.True(errors.Is(err, ErrTooLarge))
	var fe *mki.FormatError
	assert.False(errors.As(err, &fe))
}
