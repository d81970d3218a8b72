package errors

import (
	"strings"
	"unicode"
)

// ValidateExecutablePath validates the renderer executable path taken from
// config or flags before it reaches process creation.
//
// Rules:
//   - No empty paths
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - No trailing path separator (a directory is never an executable)
func ValidateExecutablePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "renderer path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "renderer path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "renderer path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "renderer path must name a file, not a directory: %q", path)
	}

	return nil
}

// ValidateLightingLabel validates a lighting preset label supplied by a
// collaborator. The label travels to the renderer as a single argv token, so
// it only has to be non-empty and printable.
func ValidateLightingLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "lighting preset cannot be empty")
	}

	const maxLabelLength = 64
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "lighting preset too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "lighting preset contains invalid control characters")
		}
	}

	return nil
}
