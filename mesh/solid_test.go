package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTubeTessellation(t *testing.T) {
	s, err := Tube(20, 10, 6)
	if err != nil {
		t.Fatalf("Tube failed: %v", err)
	}

	m, err := FromSDF("tube", s, 40)
	if err != nil {
		t.Fatalf("FromSDF failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	t.Logf("tube face count: %d (degenerate: %d)", m.FaceCount(), m.DegenerateCount())

	box := m.Bounds()
	size := box.Size()
	cell := 25.0 / 40.0
	if math.Abs(size.X()-20) > 2*cell || math.Abs(size.Y()-20) > 2*cell {
		t.Errorf("expected ~20x20 footprint, got %v", size)
	}
	if math.Abs(size.Z()-20) > 2*cell {
		t.Errorf("expected ~20 height, got %v", size.Z())
	}

	// No vertex lies inside the bore.
	for i, f := range m.Faces {
		for _, v := range f.Vertices {
			if r := math.Hypot(v.X(), v.Y()); r < 6-2*cell {
				t.Fatalf("face %d has vertex %v inside the bore (r=%v)", i, v, r)
			}
		}
	}
}

func TestTubeInvalidBore(t *testing.T) {
	for _, inner := range []float64{0, -1, 10, 12} {
		if _, err := Tube(20, 10, inner); err == nil {
			t.Errorf("expected error for inner radius %v", inner)
		}
	}
}

func TestBoxTessellation(t *testing.T) {
	s, err := Box(mgl64.Vec3{4, 4, 4}, mgl64.Vec3{10, 0, 0})
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	m, err := FromSDF("box", s, 20)
	if err != nil {
		t.Fatalf("FromSDF failed: %v", err)
	}

	box := m.Bounds()
	center := box.Min.Add(box.Max).Mul(0.5)
	if !vec3ApproxEqual(center, mgl64.Vec3{10, 0, 0}, 0.5) {
		t.Errorf("expected box centered at {10 0 0}, got %v", center)
	}
}
