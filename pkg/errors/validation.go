package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidateOutputPath checks an output path (without extension) before any
// rendering work is done. It only rejects paths that can never be written;
// missing directories and permissions are reported by the write itself.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Must not end in a path separator
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory: %q", path)
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed []string) error {
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateDirection checks a Graphviz rankdir value.
func ValidateDirection(dir string) error {
	switch strings.ToUpper(dir) {
	case "TB", "BT", "LR", "RL":
		return nil
	}
	return New(ErrCodeInvalidDirection, "invalid direction: %s (must be TB, BT, LR or RL)", dir)
}
