package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeExport, cause, "save failed")

	if err.Code != ErrCodeExport {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeExport)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeRender, "test"),
			code:     ErrCodeRender,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeRender, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeExport, New(ErrCodeRender, "inner"), "outer"),
			code:     ErrCodeExport,
			expected: true,
		},
		{
			name:     "fetch error",
			err:      fmt.Errorf("load: %w", &FetchError{URL: "u", Status: 500}),
			code:     ErrCodeFetch,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidViewBox, "test"), ErrCodeInvalidViewBox},
		{"fetch error", &FetchError{Status: 404}, ErrCodeFetch},
		{"render error", fmt.Errorf("load: %w", &RenderError{Message: "bad"}), ErrCodeRender},
		{"outermost wins", &ExportError{Cause: &RenderError{Message: "bad"}}, ErrCodeExport},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"wrapped cause", Wrap(ErrCodeRender, errors.New("syntax error in line 1"), "render"), "render: syntax error in line 1"},
		{"plain error", errors.New("plain error"), "plain error"},
		{"render error with coded cause", &RenderError{Message: "engine: boom", Cause: New(ErrCodeInvalidViewBox, "inner detail")}, "engine: boom"},
		{"wrapped render error", fmt.Errorf("render: %w", &RenderError{Message: "syntax error in line 1"}), "syntax error in line 1"},
		{"coded error around render error", Wrap(ErrCodeFetch, &RenderError{Message: "bad"}, "generate"), "generate: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFetchError(t *testing.T) {
	t.Run("status and body", func(t *testing.T) {
		err := &FetchError{URL: "http://x/trials/t42/prospective.dot", Status: 404, Body: "not found\n"}
		msg := err.Error()
		if !strings.Contains(msg, "404") || !strings.Contains(msg, "not found") {
			t.Errorf("Error() = %q, want status and body", msg)
		}
		if !err.NotFound() {
			t.Error("NotFound() = false, want true")
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &FetchError{URL: "http://x", Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("errors.Is(err, cause) = false, want true")
		}
		if strings.Contains(err.Error(), "status") {
			t.Errorf("Error() = %q, should not mention a status", err.Error())
		}
	})
}

func TestRenderError(t *testing.T) {
	cause := errors.New("syntax error in line 1 near '->'")
	err := fmt.Errorf("render: %w", &RenderError{Message: cause.Error(), Cause: cause})

	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatal("errors.As(*RenderError) = false")
	}
	if re.Error() != "syntax error in line 1 near '->'" {
		t.Errorf("Error() = %q, want engine message verbatim", re.Error())
	}
	if GetCode(err) != ErrCodeRender {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeRender)
	}
	if !errors.Is(err, cause) {
		t.Error("RenderError should unwrap to its cause")
	}
}

func TestExportError(t *testing.T) {
	cause := errors.New("disk full")
	err := &ExportError{Filename: "prospective_t42.svg", Cause: cause}

	if got := err.Error(); got != "export prospective_t42.svg: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, ErrCodeExport) {
		t.Error("Is(err, ErrCodeExport) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Error("ExportError should unwrap to its cause")
	}
}
