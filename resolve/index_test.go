package resolve

import (
	"testing"

	"github.com/akmonengine/aperture/intersect"
	"github.com/go-gl/mathgl/mgl64"
)

func hit(face, ray int, t float64) intersect.Hit {
	return intersect.Hit{Face: face, Ray: ray, T: t, Point: mgl64.Vec3{0, 0, t}}
}

func TestIndexBuild(t *testing.T) {
	hits := []intersect.Hit{
		hit(0, 2, 0.1),
		hit(0, 4, 0.2),
		hit(1, 2, 0.3),
		hit(3, 0, 0.4),
		hit(5, 2, 0.5),
	}

	ix := NewIndex(6)
	ix.Build(hits)

	if ix.Len() != len(hits) {
		t.Errorf("expected %d entries, got %d", len(hits), ix.Len())
	}

	expectedRays := []int{0, 2, 4}
	if got := ix.Rays(); len(got) != len(expectedRays) {
		t.Fatalf("Rays() = %v, want %v", got, expectedRays)
	}
	for i, r := range expectedRays {
		if ix.Rays()[i] != r {
			t.Errorf("Rays()[%d] = %d, want %d", i, ix.Rays()[i], r)
		}
	}

	tests := []struct {
		ray      int
		expected []Entry
	}{
		{0, []Entry{{Candidate: 3, Face: 3}}},
		{1, nil},
		{2, []Entry{{Candidate: 0, Face: 0}, {Candidate: 2, Face: 1}, {Candidate: 4, Face: 5}}},
		{3, nil},
		{4, []Entry{{Candidate: 1, Face: 0}}},
		{5, nil},
	}
	for _, tt := range tests {
		got := ix.Entries(tt.ray)
		if len(got) != len(tt.expected) {
			t.Errorf("ray %d: got %v, want %v", tt.ray, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("ray %d entry %d: got %v, want %v", tt.ray, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	ix := NewIndex(2)
	ix.Build([]intersect.Hit{hit(0, 1, 0)})

	if ix.Entries(-1) != nil || ix.Entries(2) != nil {
		t.Error("expected nil entries outside the ray domain")
	}
}

func TestIndexRebuildReusesBuffers(t *testing.T) {
	ix := NewIndex(4)
	ix.Build([]intersect.Hit{hit(0, 1, 0), hit(1, 1, 0), hit(2, 3, 0)})
	ix.Build([]intersect.Hit{hit(7, 0, 0)})

	if ix.Len() != 1 {
		t.Fatalf("expected 1 entry after rebuild, got %d", ix.Len())
	}
	if len(ix.Entries(1)) != 0 || len(ix.Entries(3)) != 0 {
		t.Error("expected previous build to be cleared")
	}
	if e := ix.Entries(0); len(e) != 1 || e[0].Face != 7 {
		t.Errorf("unexpected entries for ray 0: %v", e)
	}

	ix.Clear()
	if ix.Len() != 0 || len(ix.Rays()) != 0 {
		t.Error("expected Clear to empty the index")
	}
}

func TestIndexEmpty(t *testing.T) {
	ix := NewIndex(3)
	ix.Build(nil)
	if ix.Len() != 0 || len(ix.Rays()) != 0 {
		t.Errorf("expected empty index, got %d entries", ix.Len())
	}
	for r := 0; r < 3; r++ {
		if len(ix.Entries(r)) != 0 {
			t.Errorf("ray %d: expected no entries", r)
		}
	}
}
