package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := NewFileSaver(dir)
	ctx := context.Background()

	if err := s.Save(ctx, []byte("digraph {}"), "prospective_t42.dot", MimeDOT); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save(ctx, []byte("digraph { a }"), "prospective_t42.dot", MimeDOT); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "prospective_t42.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "digraph { a }" {
		t.Errorf("file = %q, want replaced content", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (no temp files left)", len(entries))
	}
}

func TestFileSaverStaysInDir(t *testing.T) {
	s := NewFileSaver("/out")
	if got := s.Path("../../etc/passwd"); got != filepath.Join("/out", "passwd") {
		t.Errorf("Path() = %q, want file inside the directory", got)
	}
}
