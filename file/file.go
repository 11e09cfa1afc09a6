package file

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/mki"
	"github.com/jsphweid/mki/model"
	"github.com/pkg/errors"
)

// ErrTooLarge is returned by Read for input over constants.MaxUploadSize.
var ErrTooLarge = errors.New("file too large")

// NormalizePath lower-cases the file name, forces the .mki extension and
// names unnamed saves untitled-<uuid>.mki. The directory part is left alone.
func NormalizePath(path string) string {
	dir, name := filepath.Split(path)
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, constants.FileExtension)
	if name == "" {
		name = "untitled-" + uuid.New().String()
	}
	return dir + name + constants.FileExtension
}

// Save encodes the score and writes it to the normalized path, which is
// returned along with any encoder warnings.
func Save(path string, s *model.Score, opts model.Options) (string, []mki.Warning, error) {
	path = NormalizePath(path)
	data, warnings := mki.Encode(s, opts)

	f, err := os.Create(path)
	if err != nil {
		return path, warnings, errors.Wrapf(err, "unable to save file at path %s", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return path, warnings, errors.Wrapf(err, "write failed for file %s", path)
	}
	if err := f.Close(); err != nil {
		return path, warnings, errors.Wrapf(err, "unable to close file %s", path)
	}
	return path, warnings, nil
}

func Load(path string) (*model.Score, model.Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.Options{}, errors.Wrapf(err, "invalid file %s", path)
	}
	defer f.Close()
	return Read(f, path)
}

// Read decodes a score from r. name only shows up in errors.
func Read(r io.Reader, name string) (*model.Score, model.Options, error) {
	data, err := io.ReadAll(io.LimitReader(r, constants.MaxUploadSize+1))
	if err != nil {
		return nil, model.Options{}, errors.Wrapf(err, "could not read %s", name)
	}
	if len(data) > constants.MaxUploadSize {
		return nil, model.Options{}, errors.Wrapf(ErrTooLarge, "%s is larger than %d bytes", name, constants.MaxUploadSize)
	}
	s, opts, err := mki.Decode(data)
	if err != nil {
		return nil, model.Options{}, errors.Wrapf(err, "invalid MKI file %s", name)
	}
	return s, opts, nil
}

// GatherScorePaths lists the .mki files below dir.
func GatherScorePaths(dir string) ([]string, error) {
	var res []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "could not read score dir")
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), constants.FileExtension) {
			res = append(res, filepath.Join(dir, e.Name()))
		}
	}
	return res, nil
}
