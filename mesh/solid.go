package mesh

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 100

// ErrEmptySolid is returned when tessellation produces no triangles.
var ErrEmptySolid = errors.New("mesh: solid tessellated to no faces")

// FromSDF tessellates s with uniform marching cubes into a mesh. cells is the
// number of cells along the longest side of the bounding box; values < 1 use
// DefaultMeshCells.
func FromSDF(name string, s sdf.SDF3, cells int) (*Mesh, error) {
	if cells < 1 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySolid, name)
	}

	return fromTriangles(name, triangles), nil
}

// fromTriangles converts sdfx triangles to faces, keeping their order.
func fromTriangles(name string, triangles []*sdf.Triangle3) *Mesh {
	faces := make([]Face, len(triangles))
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			faces[i].Vertices[j] = mgl64.Vec3{v.X, v.Y, v.Z}
		}
	}
	return &Mesh{Name: name, Faces: faces}
}

// Tube returns a pipe along the Z axis, centered on the origin: a cylinder
// of radius outer with a coaxial bore of radius inner.
func Tube(height, outer, inner float64) (sdf.SDF3, error) {
	if inner <= 0 || inner >= outer {
		return nil, fmt.Errorf("mesh: tube bore %v must lie in (0, %v)", inner, outer)
	}

	body, err := sdf.Cylinder3D(height, outer, 0)
	if err != nil {
		return nil, fmt.Errorf("mesh: tube body: %w", err)
	}
	// The bore is longer than the body so both ends are open.
	bore, err := sdf.Cylinder3D(height*1.5, inner, 0)
	if err != nil {
		return nil, fmt.Errorf("mesh: tube bore: %w", err)
	}

	return sdf.Difference3D(body, bore), nil
}

// Box returns a box of the given dimensions centered on center.
func Box(size, center mgl64.Vec3) (sdf.SDF3, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X(), Y: size.Y(), Z: size.Z()}, 0)
	if err != nil {
		return nil, fmt.Errorf("mesh: box: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{X: center.X(), Y: center.Y(), Z: center.Z()})
	return sdf.Transform3D(s, m), nil
}
