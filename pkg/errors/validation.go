package errors

import (
	"strings"
	"unicode"
)

// ValidateMarkerFilename validates a package manifest marker filename.
// Markers are matched against document basenames during package
// attribution, so they must be simple basenames without path components.
func ValidateMarkerFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidConfig, "marker filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidConfig, "marker filename cannot contain path separators")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "marker filename contains invalid control characters")
		}
	}

	return nil
}
