package source

import (
	"context"
	"testing"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"t42", "trials/t42/prospective.dot"},
		{"run 7", "trials/run%207/prospective.dot"},
		{"a?b", "trials/a%3Fb/prospective.dot"},
	}
	for _, tt := range tests {
		if got := Location(tt.id); got != tt.want {
			t.Errorf("Location(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestFunc(t *testing.T) {
	var s Source = Func(func(ctx context.Context, id string) (string, error) {
		return "digraph { " + id + " }", nil
	})
	got, err := s.Fetch(context.Background(), "x")
	if err != nil || got != "digraph { x }" {
		t.Errorf("Fetch() = %q, %v", got, err)
	}
}
