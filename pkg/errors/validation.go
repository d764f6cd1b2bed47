package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds model names used as storage keys.
const maxNameLength = 256

// ValidateModelName validates a model name used as a storage key.
// It rejects names that could be used for path traversal or key injection,
// since file stores map names directly onto file names.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - No leading dot
//   - Maximum length of 256 characters
func ValidateModelName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "model name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "model name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "model name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "model name contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "model name cannot start with a dot")
	}

	return nil
}
