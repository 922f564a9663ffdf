package export

import (
	"context"
	"os"
	"path/filepath"
)

// FileSaver writes exports into a directory, creating it on first use.
// Existing files are replaced.
type FileSaver struct {
	Dir string
}

// NewFileSaver returns a saver writing into dir.
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{Dir: dir}
}

// Path returns where filename is written.
func (s *FileSaver) Path(filename string) string {
	return filepath.Join(s.Dir, filepath.Base(filename))
}

// Save writes data to a temporary file and renames it into place.
func (s *FileSaver) Save(ctx context.Context, data []byte, filename, mimeType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, ".export-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path(filename))
}

var _ Saver = (*FileSaver)(nil)
