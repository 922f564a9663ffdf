package errors

import (
	"strings"
	"testing"
)

func TestValidateTrialID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid short", "t42", false},
		{"valid uuid", "0b6c1a9e-6a3c-4c1e-9a55-0e1f2d3c4b5a", false},
		{"valid with dot", "trial.1", false},
		{"valid leading dot", ".t42", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"current directory", ".", true},
		{"path traversal", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrialID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTrialID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTrial) {
				t.Errorf("ValidateTrialID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTrial)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http", "http://localhost:8080", false},
		{"https", "https://example.com/now", false},
		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
