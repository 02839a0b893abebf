package resolve

import (
	"errors"
	"testing"

	"github.com/akmonengine/aperture/intersect"
)

func TestSelectNearest(t *testing.T) {
	// One ray pierces three overlapping faces.
	hits := []intersect.Hit{
		hit(0, 0, 0.5),
		hit(1, 0, 0.2),
		hit(2, 0, 0.8),
	}

	selected, err := Cluster(hits, 1, Nearest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selected) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(selected))
	}
	if selected[0].Face != 1 || selected[0].T != 0.2 {
		t.Errorf("expected face 1 at t=0.2, got %+v", selected[0])
	}
}

func TestSelectTails(t *testing.T) {
	hits := []intersect.Hit{
		hit(0, 0, 0.5),
		hit(1, 0, 0.2),
		hit(2, 0, 0.8),
	}

	selected, err := Cluster(hits, 1, Tails)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selected) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(selected))
	}
	for i, h := range selected {
		if h.Face != i {
			t.Errorf("hit %d: expected face %d, got %d", i, i, h.Face)
		}
	}
}

func TestSelectNearestTieBreak(t *testing.T) {
	hits := []intersect.Hit{
		hit(4, 1, 0.7),
		hit(6, 1, 0.3),
		hit(9, 1, 0.3),
		hit(11, 1, 0.3),
	}

	selected, err := Cluster(hits, 2, Nearest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(selected) != 1 || selected[0].Face != 6 {
		t.Errorf("expected first-encountered face 6, got %+v", selected)
	}
}

func TestSelectNearestManyRays(t *testing.T) {
	hits := []intersect.Hit{
		hit(0, 3, 0.9),
		hit(0, 1, 0.4),
		hit(2, 3, 0.1),
		hit(2, 1, 0.6),
		hit(5, 0, 0.5),
	}

	selected, err := Cluster(hits, 5, Nearest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct{ ray, face int }{{0, 5}, {1, 0}, {3, 2}}
	if len(selected) != len(expected) {
		t.Fatalf("expected %d hits, got %d", len(expected), len(selected))
	}
	for i, e := range expected {
		if selected[i].Ray != e.ray || selected[i].Face != e.face {
			t.Errorf("hit %d: got (ray %d, face %d), want (ray %d, face %d)",
				i, selected[i].Ray, selected[i].Face, e.ray, e.face)
		}
	}
}

func TestSelectNoHits(t *testing.T) {
	for _, mode := range []Mode{Nearest, Tails} {
		selected, err := Cluster(nil, 3, mode)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", mode, err)
		}
		if len(selected) != 0 {
			t.Errorf("%v: expected no hits, got %v", mode, selected)
		}
	}
}

func TestSelectStaleIndex(t *testing.T) {
	hits := []intersect.Hit{hit(0, 0, 0.5), hit(1, 1, 0.2)}
	ix := NewIndex(2)
	ix.Build(hits[:1])

	if _, err := Select(hits, ix, Nearest); !errors.Is(err, ErrStaleIndex) {
		t.Errorf("expected ErrStaleIndex, got %v", err)
	}

	ix.Build(hits)
	selected, err := Select(hits, ix, Nearest)
	if err != nil {
		t.Fatalf("unexpected error after rebuilding: %v", err)
	}
	if len(selected) != 2 {
		t.Errorf("expected one hit per ray, got %v", selected)
	}
}

func TestSelectUnsupportedMode(t *testing.T) {
	if _, err := Cluster([]intersect.Hit{hit(0, 0, 0)}, 1, Mode(7)); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("expected ErrUnsupportedMode, got %v", err)
	}

	ix := NewIndex(1)
	if _, err := Select(nil, ix, Mode(7)); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("expected ErrUnsupportedMode, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"", Nearest, false},
		{"nearest", Nearest, false},
		{"TAILS", Tails, false},
		{"closest", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedMode) {
					t.Errorf("expected ErrUnsupportedMode, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
