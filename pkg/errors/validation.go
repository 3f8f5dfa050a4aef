package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a data column name used in a binding.
// Column names come from caller data frames, so the rules are structural only:
// non-empty, no control characters, bounded length.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidArgument, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidArgument, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "column name contains control characters")
		}
	}

	return nil
}

// ValidateDatasetName validates an upload name.
// The server rejects control characters and over-long names; checking here
// keeps the failure synchronous and attributable.
func ValidateDatasetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidArgument, "dataset name cannot be empty")
	}

	if len(name) > 512 {
		return New(ErrCodeInvalidArgument, "dataset name too long (max 512 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "dataset name contains invalid characters")
		}
	}

	return nil
}

// ValidateServerURL validates a server base URL for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateServerURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "server URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "server URL must use http or https scheme")
	}

	return nil
}
