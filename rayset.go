package aperture

import (
	"fmt"

	"github.com/akmonengine/aperture/mesh"
	"github.com/akmonengine/aperture/orient"
)

// ErrShapeMismatch is returned when a ray shape and a ray count disagree, or
// a grid is indexed with the wrong rank or an out of range index.
var ErrShapeMismatch = fmt.Errorf("aperture: %w", orient.ErrShapeMismatch)

// RaySet is a flattened collection of rays. Rays[i] has RayId i; Shape is the
// caller's index space (for example radial × angular × axial), which the
// output Grid restores. Rays are laid out in row-major order of Shape.
type RaySet struct {
	Shape []int
	Rays  []mesh.Ray
}

// NewRaySet checks that shape describes exactly len(rays) rays.
func NewRaySet(shape []int, rays []mesh.Ray) (RaySet, error) {
	rs := RaySet{Shape: append([]int(nil), shape...), Rays: rays}
	if err := rs.Validate(); err != nil {
		return RaySet{}, err
	}
	return rs, nil
}

// Flat wraps rays in a one-dimensional RaySet.
func Flat(rays []mesh.Ray) RaySet {
	return RaySet{Shape: []int{len(rays)}, Rays: rays}
}

// Len returns the number of rays.
func (rs RaySet) Len() int {
	return len(rs.Rays)
}

// Validate reports a shape with no dimensions, a non-positive dimension, or
// a product different from the number of rays.
func (rs RaySet) Validate() error {
	if len(rs.Shape) == 0 {
		return fmt.Errorf("%w: ray shape has no dimensions", ErrShapeMismatch)
	}
	n := 1
	for _, d := range rs.Shape {
		if d < 1 {
			return fmt.Errorf("%w: ray shape %v has a non-positive dimension", ErrShapeMismatch, rs.Shape)
		}
		n *= d
	}
	if n != len(rs.Rays) {
		return fmt.Errorf("%w: ray shape %v holds %d rays, got %d", ErrShapeMismatch, rs.Shape, n, len(rs.Rays))
	}
	return nil
}
