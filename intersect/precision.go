package intersect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedPrecision is returned for a Precision value the intersector
// does not implement.
var ErrUnsupportedPrecision = errors.New("intersect: unsupported precision")

// Precision selects the floating point width of the sign tests and the solve.
// Float32 halves the memory of the ray and face working copies at the cost of
// accuracy near edges and for nearly parallel rays.
type Precision uint8

const (
	Float64 Precision = iota
	Float32
)

func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	}
	return fmt.Sprintf("Precision(%d)", uint8(p))
}

// Validate returns ErrUnsupportedPrecision if p is not a known precision.
func (p Precision) Validate() error {
	if p > Float32 {
		return fmt.Errorf("%w: %d", ErrUnsupportedPrecision, uint8(p))
	}
	return nil
}

// ParsePrecision parses "float64" (or "double", or the empty string) and
// "float32" (or "single").
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float64", "double":
		return Float64, nil
	case "float32", "single":
		return Float32, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPrecision, s)
}
