package prospective

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/prospect/pkg/errors"
)

const componentsTOML = `
[[component]]
first_line = 1
last_line = 1
type = "import"
name = "os"

[[component]]
first_line = 3
last_line = 5
type = "for"
name = "for i in range(3)"
column = 0
`

func TestLoadComponents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ComponentsFile)
	if err := os.WriteFile(path, []byte(componentsTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	cs, err := LoadComponents(path)
	if err != nil {
		t.Fatalf("LoadComponents() error: %v", err)
	}
	if len(cs) != 2 {
		t.Fatalf("got %d components, want 2", len(cs))
	}
	want := Component{FirstLine: 3, LastLine: 5, Type: "for", Name: "for i in range(3)"}
	if cs[1] != want {
		t.Errorf("component = %+v, want %+v", cs[1], want)
	}
}

func TestDecodeComponentsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", "[[component]\n"},
		{"unknown key", "[[component]]\ntype = \"call\"\ncolour = \"red\"\n"},
		{"missing type", "[[component]]\nfirst_line = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeComponents(strings.NewReader(tt.in)); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("DecodeComponents() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadComponentsMissingFile(t *testing.T) {
	if _, err := LoadComponents(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadComponents() of a missing file should fail")
	}
}
