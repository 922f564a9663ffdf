package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/prospect/pkg/errors"
)

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "trials", "t42")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("digraph { a -> b }"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewDirSource(root)
	text, err := s.Fetch(context.Background(), "t42")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if text != "digraph { a -> b }" {
		t.Errorf("Fetch() = %q", text)
	}
}

func TestDirSourceMissing(t *testing.T) {
	s := NewDirSource(t.TempDir())
	_, err := s.Fetch(context.Background(), "t99")

	var fe *errors.FetchError
	if !asFetchError(err, &fe) {
		t.Fatalf("Fetch() error = %v, want *errors.FetchError", err)
	}
	if !fe.NotFound() {
		t.Errorf("Status = %d, want 404", fe.Status)
	}
	msg := err.Error()
	if !strings.Contains(msg, "404") || !strings.Contains(msg, "not found") {
		t.Errorf("error %q should mention 404 and not found", msg)
	}
}

func TestDirSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewDirSource(t.TempDir()).Fetch(ctx, "t42"); err == nil {
		t.Error("Fetch() with canceled context should fail")
	}
}
