package transform

import (
	"strings"

	"github.com/matzehuels/svgmapper/pkg/errors"
)

// StretchMode is the policy for fitting an image into a differently shaped
// control.
type StretchMode int

const (
	// Uniform preserves aspect ratio and letterboxes (min of axis ratios).
	Uniform StretchMode = iota
	// UniformToFill preserves aspect ratio and crops (max of axis ratios).
	UniformToFill
	// Fill scales each axis independently and distorts.
	Fill
)

var stretchNames = map[StretchMode]string{
	Uniform:       "uniform",
	UniformToFill: "uniform-to-fill",
	Fill:          "fill",
}

func (m StretchMode) String() string {
	if s, ok := stretchNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseStretchMode parses a stretch mode name. Matching is case-insensitive
// and accepts "uniformtofill" and "uniform_to_fill" spellings.
func ParseStretchMode(s string) (StretchMode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	switch norm {
	case "", "uniform":
		return Uniform, nil
	case "uniform-to-fill", "uniformtofill":
		return UniformToFill, nil
	case "fill":
		return Fill, nil
	}
	return Uniform, errors.New(errors.ErrCodeInvalidInput, "unknown stretch mode %q (want uniform, uniform-to-fill or fill)", s)
}

// MarshalText implements encoding.TextMarshaler for config files.
func (m StretchMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (m *StretchMode) UnmarshalText(text []byte) error {
	v, err := ParseStretchMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
