package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBounds(t *testing.T) {
	t.Run("no faces", func(t *testing.T) {
		box := Bounds(nil)
		if !box.IsEmpty() {
			t.Errorf("expected empty box, got %v", box)
		}
		if box.Size() != (mgl64.Vec3{}) {
			t.Errorf("expected zero size, got %v", box.Size())
		}
	})

	t.Run("two faces", func(t *testing.T) {
		faces := []Face{
			NewFace(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}),
			NewFace(mgl64.Vec3{-2, 3, 1}, mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, -1, 0}),
		}
		box := Bounds(faces)
		if box.Min != (mgl64.Vec3{-2, -1, 0}) {
			t.Errorf("Min = %v, want {-2 -1 0}", box.Min)
		}
		if box.Max != (mgl64.Vec3{1, 3, 5}) {
			t.Errorf("Max = %v, want {1 3 5}", box.Max)
		}
		if box.Size() != (mgl64.Vec3{3, 4, 5}) {
			t.Errorf("Size = %v, want {3 4 5}", box.Size())
		}
	})
}
