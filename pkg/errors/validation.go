package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxNameLength bounds room names, seat labels and field numbers.
const MaxNameLength = 256

// ValidateName validates a user-supplied room name or seat label.
// Blank names are accepted here; callers decide whether blank means
// "keep previous" or "use default".
//
// The validation rules:
//   - No control characters (newlines break the exported data-label attribute)
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// ValidateExportPath validates an output path for SVG or PNG export.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
//   - Extension, when present, must match want (e.g. ".svg")
func ValidateExportPath(path, want string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if want != "" && ext != "" && ext != want {
		return New(ErrCodeInvalidPath, "expected %s file, got %s", want, ext)
	}

	return nil
}

// ValidateColor validates an SVG paint value for a room style. Empty means
// "use the default".
//
// Accepted forms:
//   - #rgb or #rrggbb hex
//   - a named color made of ASCII letters (e.g. "steelblue")
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if hex, ok := strings.CutPrefix(color, "#"); ok {
		if len(hex) != 3 && len(hex) != 6 {
			return New(ErrCodeInvalidInput, "color %q must be #rgb or #rrggbb", color)
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return New(ErrCodeInvalidInput, "color %q is not hex", color)
			}
		}
		return nil
	}
	for _, r := range color {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return New(ErrCodeInvalidInput, "color %q is neither hex nor a color name", color)
		}
	}
	return nil
}

// ValidateOpacity checks that an opacity lies in [0, 1].
func ValidateOpacity(v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return New(ErrCodeInvalidInput, "opacity %v must be between 0 and 1", v)
	}
	return nil
}
