package source

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/prospect/pkg/errors"
)

// DirSource reads graph descriptions from a local directory laid out like the
// server: <root>/trials/<id>/prospective.dot.
type DirSource struct {
	Root string
}

// NewDirSource returns a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Root: dir}
}

// Path returns the file a trial's description is read from.
func (s *DirSource) Path(trialID string) string {
	return filepath.Join(s.Root, "trials", trialID, FileName)
}

// Fetch reads the trial's file. A missing file is reported like an HTTP 404
// so hosts handle both sources alike.
func (s *DirSource) Fetch(ctx context.Context, trialID string) (string, error) {
	if err := errors.ValidateTrialID(trialID); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := s.Path(trialID)

	data, err := os.ReadFile(p)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return "", &errors.FetchError{URL: p, Status: 404, Body: "not found"}
	case err != nil:
		return "", &errors.FetchError{URL: p, Cause: err}
	}
	return string(data), nil
}

var _ Source = (*DirSource)(nil)
