package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akmonengine/aperture/intersect"
)

var (
	// ErrUnsupportedMode is returned for an unknown selection Mode.
	ErrUnsupportedMode = errors.New("resolve: unsupported selection mode")
	// ErrStaleIndex is returned when an Index was not built from the hits
	// being selected.
	ErrStaleIndex = errors.New("resolve: index does not match hits")
)

// Mode selects which hits of a ray are kept.
type Mode uint8

const (
	// Nearest keeps, per ray, the hit with the smallest t. Among equal t the
	// entry built first (the lowest FaceId for a face-ordered hit list) wins.
	Nearest Mode = iota
	// Tails keeps every hit.
	Tails
)

func (m Mode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Tails:
		return "tails"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Validate returns ErrUnsupportedMode if m is not a known mode.
func (m Mode) Validate() error {
	if m > Tails {
		return fmt.Errorf("%w: %d", ErrUnsupportedMode, uint8(m))
	}
	return nil
}

// ParseMode parses "nearest" (or the empty string) and "tails".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return Nearest, nil
	case "tails":
		return Tails, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// Select reduces hits according to mode. ix must have been built from hits.
//
// In Nearest mode the result holds at most one hit per ray, ordered by RayId.
// In Tails mode hits is returned unchanged.
func Select(hits []intersect.Hit, ix *Index, mode Mode) ([]intersect.Hit, error) {
	switch mode {
	case Tails:
		return hits, nil
	case Nearest:
		if ix.Len() != len(hits) {
			return nil, fmt.Errorf("%w: %d entries for %d hits", ErrStaleIndex, ix.Len(), len(hits))
		}
		selected := make([]intersect.Hit, 0, len(ix.Rays()))
		for _, ray := range ix.Rays() {
			selected = append(selected, hits[nearest(hits, ix.Entries(ray))])
		}
		return selected, nil
	}
	return nil, mode.Validate()
}

// nearest returns the candidate index of the entry with the smallest t.
func nearest(hits []intersect.Hit, entries []Entry) int {
	best := entries[0].Candidate
	for _, e := range entries[1:] {
		// Strict comparison keeps the first entry on ties.
		if hits[e.Candidate].T < hits[best].T {
			best = e.Candidate
		}
	}
	return best
}

// Cluster builds a fresh index over hits for numRays rays and applies Select.
func Cluster(hits []intersect.Hit, numRays int, mode Mode) ([]intersect.Hit, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	ix := NewIndex(numRays)
	ix.Build(hits)
	return Select(hits, ix, mode)
}
