package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxLabelLength bounds side labels; they are short numbers or symbols.
const maxLabelLength = 32

// ValidateLevel checks that level lies in [min, max] for the named problem kind.
func ValidateLevel(kind string, level, min, max int) error {
	if level < min || level > max {
		return New(ErrCodeInvalidLevel, "%s problems must be level %d - %d, got %d", kind, min, max, level)
	}
	return nil
}

// ValidateLeg checks that a triangle leg length is a positive finite number.
func ValidateLeg(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidGeometry, "leg %s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidGeometry, "leg %s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateAngle checks that an angle in degrees is finite.
func ValidateAngle(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return New(ErrCodeInvalidGeometry, "rotation must be finite, got %v", deg)
	}
	return nil
}

// ValidateLabel validates a caller-supplied diagram label.
//
// Labels are written into SVG verbatim so that entities such as &theta; or
// &sup2; render as symbols. Raw markup characters are therefore rejected:
//   - No control characters
//   - No '<' or '>'
//   - Maximum length of 32 characters
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}
	if strings.ContainsAny(label, "<>") {
		return New(ErrCodeInvalidLabel, "label contains markup characters")
	}
	return nil
}

// ValidateSetID checks that id is a canonical UUID string.
func ValidateSetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "set id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid set id %q", id)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed. Matching is exact;
// callers lower-case user input first.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}
