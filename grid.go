package aperture

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Cell is the resolved result of one ray. When Hit is false the ray crossed
// no face and the other fields are zero, except Face which is -1.
type Cell struct {
	Hit   bool
	Point mgl64.Vec3
	T     float64
	Face  int
}

// Pair is a retained (FaceId, RayId) intersection.
type Pair struct {
	Face int
	Ray  int
}

// Grid is the output of a run: one Cell per RayId, shaped like the RaySet
// that produced it.
type Grid struct {
	Shape []int
	Cells []Cell
	// Pairs lists the retained intersections in FaceId, then RayId order:
	// the resolved hit of every ray in nearest mode, every confirmed hit in
	// tails mode.
	Pairs []Pair
}

func newGrid(shape []int, n int) *Grid {
	g := &Grid{
		Shape: append([]int(nil), shape...),
		Cells: make([]Cell, n),
	}
	for i := range g.Cells {
		g.Cells[i].Face = -1
	}
	return g
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// HitCount returns the number of rays with a resolved hit.
func (g *Grid) HitCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.Hit {
			n++
		}
	}
	return n
}

// Ravel converts a multi-dimensional index into a RayId.
func (g *Grid) Ravel(idx ...int) (int, error) {
	if len(idx) != len(g.Shape) {
		return 0, fmt.Errorf("%w: index rank %d, grid rank %d", ErrShapeMismatch, len(idx), len(g.Shape))
	}
	ray := 0
	for i, d := range g.Shape {
		if idx[i] < 0 || idx[i] >= d {
			return 0, fmt.Errorf("%w: index %v out of shape %v", ErrShapeMismatch, idx, g.Shape)
		}
		ray = ray*d + idx[i]
	}
	return ray, nil
}

// Unravel converts a RayId into its multi-dimensional index.
func (g *Grid) Unravel(ray int) ([]int, error) {
	if ray < 0 || ray >= len(g.Cells) {
		return nil, fmt.Errorf("%w: ray %d out of %d", ErrShapeMismatch, ray, len(g.Cells))
	}
	idx := make([]int, len(g.Shape))
	for i := len(g.Shape) - 1; i >= 0; i-- {
		idx[i] = ray % g.Shape[i]
		ray /= g.Shape[i]
	}
	return idx, nil
}

// At returns the cell at a multi-dimensional index.
func (g *Grid) At(idx ...int) (Cell, error) {
	ray, err := g.Ravel(idx...)
	if err != nil {
		return Cell{}, err
	}
	return g.Cells[ray], nil
}

// resolvedPairs lists the hit cells in FaceId, then RayId order.
func (g *Grid) resolvedPairs() []Pair {
	pairs := make([]Pair, 0, g.HitCount())
	for ray, c := range g.Cells {
		if c.Hit {
			pairs = append(pairs, Pair{Face: c.Face, Ray: ray})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Face < pairs[j].Face
	})
	return pairs
}
