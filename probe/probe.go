// Package probe generates the ray segments used to sound a structure.
package probe

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/aperture/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMargin is how far past the mesh bounds the axial stations extend.
const DefaultMargin = 1.0

// ErrInvalidGrid is returned for a grid with a non-positive dimension or an
// empty axial range.
var ErrInvalidGrid = errors.New("probe: invalid grid")

// Cylindrical is a grid of radial segments around the Z axis. The radial
// interval [0, RMax] is split into NR segments; each segment is repeated at
// NTheta angles evenly spaced over a full turn (2π excluded) and at NZ heights
// spanning the mesh bounds extended by Margin on both ends.
//
// The rays are laid out with shape (NR, NTheta, NZ) in row-major order.
type Cylindrical struct {
	NR     int
	NTheta int
	NZ     int
	RMax   float64
	Margin float64
}

// Shape returns the ray index shape (NR, NTheta, NZ).
func (c Cylindrical) Shape() []int {
	return []int{c.NR, c.NTheta, c.NZ}
}

// Validate reports a grid that cannot produce rays.
func (c Cylindrical) Validate() error {
	if c.NR < 1 || c.NTheta < 1 || c.NZ < 1 {
		return fmt.Errorf("%w: shape %v", ErrInvalidGrid, c.Shape())
	}
	if !(c.RMax > 0) {
		return fmt.Errorf("%w: rmax %v", ErrInvalidGrid, c.RMax)
	}
	return nil
}

// Rays generates the grid for a structure bounded by bounds.
func (c Cylindrical) Rays(bounds mesh.AABB) ([]int, []mesh.Ray, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	if bounds.IsEmpty() {
		return nil, nil, fmt.Errorf("%w: empty bounds", ErrInvalidGrid)
	}

	margin := c.Margin
	if margin == 0 {
		margin = DefaultMargin
	}
	radii := linspace(0, c.RMax, c.NR+1, true)
	angles := linspace(0, 2*math.Pi, c.NTheta, false)
	heights := linspace(bounds.Min.Z()-margin, bounds.Max.Z()+margin, c.NZ, true)

	rays := make([]mesh.Ray, 0, c.NR*c.NTheta*c.NZ)
	for i := 0; i < c.NR; i++ {
		for _, th := range angles {
			sin, cos := math.Sincos(th)
			for _, z := range heights {
				rays = append(rays, mesh.Ray{
					First:  mgl64.Vec3{radii[i] * cos, radii[i] * sin, z},
					Second: mgl64.Vec3{radii[i+1] * cos, radii[i+1] * sin, z},
				})
			}
		}
	}

	return c.Shape(), rays, nil
}

// linspace returns n evenly spaced values from start to stop. With endpoint
// false, stop is excluded and the spacing is (stop-start)/n.
func linspace(start, stop float64, n int, endpoint bool) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	div := float64(n)
	if endpoint {
		div = float64(n - 1)
	}
	step := (stop - start) / div
	for i := range out {
		out[i] = start + float64(i)*step
	}
	if endpoint {
		out[n-1] = stop
	}
	return out
}
