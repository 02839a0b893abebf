// Package orient implements the orientation predicates used by the
// ray/triangle intersector.
//
// Every predicate is built on the scalar triple product a·(b×c), which is six
// times the signed volume of the tetrahedron spanned by a, b and c. The sign of
// that volume tells on which side of the plane through three points a fourth
// point lies.
//
// The functions are generic over mathgl vector types so the same code runs in
// single precision (mgl32.Vec3, float32) and double precision (mgl64.Vec3,
// float64).
package orient

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned by the batched predicates when their operands
// do not have the same length.
var ErrShapeMismatch = errors.New("orient: shape mismatch")

// Scalar is the element type of a Vector.
type Scalar interface {
	~float32 | ~float64
}

// Vector is the subset of the mathgl Vec3 method set the predicates need.
// Both mgl32.Vec3 and mgl64.Vec3 satisfy it.
type Vector[V any, S Scalar] interface {
	Add(v2 V) V
	Sub(v2 V) V
	Mul(c S) V
	Cross(v2 V) V
	Dot(v2 V) S
	Elem() (x, y, z S)
}

// TripleProduct returns a·(b×c).
func TripleProduct[V Vector[V, S], S Scalar](a, b, c V) S {
	return a.Dot(b.Cross(c))
}

// TetraVolumeSign reports whether the tetrahedron (a, b, c) with apex d has a
// strictly positive signed volume, computed as TripleProduct(a-d, b-d, c-d).
//
// A zero volume (d coplanar with a, b and c) is reported as false.
func TetraVolumeSign[V Vector[V, S], S Scalar](a, b, c, d V) bool {
	return TripleProduct[V, S](a.Sub(d), b.Sub(d), c.Sub(d)) > 0
}

// TripleProducts writes a[i]·(b[i]×c[i]) into dst[i] for every i.
func TripleProducts[V Vector[V, S], S Scalar](dst []S, a, b, c []V) error {
	n := len(dst)
	if len(a) != n || len(b) != n || len(c) != n {
		return fmt.Errorf("%w: dst=%d a=%d b=%d c=%d", ErrShapeMismatch, n, len(a), len(b), len(c))
	}

	for i := range dst {
		dst[i] = TripleProduct[V, S](a[i], b[i], c[i])
	}
	return nil
}

// TetraVolumeSigns writes TetraVolumeSign(a[i], b[i], c[i], d[i]) into dst[i]
// for every i.
func TetraVolumeSigns[V Vector[V, S], S Scalar](dst []bool, a, b, c, d []V) error {
	n := len(dst)
	if len(a) != n || len(b) != n || len(c) != n || len(d) != n {
		return fmt.Errorf("%w: dst=%d a=%d b=%d c=%d d=%d", ErrShapeMismatch, n, len(a), len(b), len(c), len(d))
	}

	for i := range dst {
		dst[i] = TetraVolumeSign[V, S](a[i], b[i], c[i], d[i])
	}
	return nil
}

// PlaneSides classifies every point of pts against the plane through v0, v1
// and v2: dst[i] is TetraVolumeSign(pts[i], v0, v1, v2).
//
// The edge vectors relative to the apex v2 are shared by all points, so only
// one subtraction and one triple product is evaluated per point.
func PlaneSides[V Vector[V, S], S Scalar](dst []bool, pts []V, v0, v1, v2 V) error {
	if len(dst) != len(pts) {
		return fmt.Errorf("%w: dst=%d pts=%d", ErrShapeMismatch, len(dst), len(pts))
	}

	e0 := v0.Sub(v2)
	e1 := v1.Sub(v2)
	// b and c of the triple product are fixed, so b×c is computed once.
	n := e0.Cross(e1)
	for i, p := range pts {
		dst[i] = p.Sub(v2).Dot(n) > 0
	}
	return nil
}
