package errors

import (
	"strings"
	"unicode"
)

// maxTrialIDLength bounds trial identifiers. Ids are path segments both in the
// fetch location and in export filenames.
const maxTrialIDLength = 256

// ValidateTrialID validates a trial identifier for safety.
// It rejects ids that could be used for path traversal or that would produce
// unusable export filenames.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators or traversal sequences, and not "."
//   - Maximum length of 256 characters
func ValidateTrialID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidTrial, "trial id cannot be empty")
	}

	if id == "." {
		return New(ErrCodeInvalidTrial, "trial id cannot be %q", id)
	}

	if len(id) > maxTrialIDLength {
		return New(ErrCodeInvalidTrial, "trial id too long (max %d characters)", maxTrialIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTrial, "trial id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidTrial, "trial id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
