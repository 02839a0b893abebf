// Package mesh holds the geometric inputs of the intersector: directed ray
// segments, triangular faces, and the meshes, bounds and transforms built
// from them.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// Ray is a directed segment from First to Second.
type Ray struct {
	First  mgl64.Vec3
	Second mgl64.Vec3
}

// Direction returns Second - First. Its length is the length of the segment.
func (r Ray) Direction() mgl64.Vec3 {
	return r.Second.Sub(r.First)
}

// At returns the point at parameter t: t=0 is First and t=1 is Second.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.First.Add(r.Direction().Mul(t))
}

// Face is a triangle in 3D space.
type Face struct {
	Vertices [3]mgl64.Vec3
}

// NewFace creates a face from its three vertices.
func NewFace(v0, v1, v2 mgl64.Vec3) Face {
	return Face{Vertices: [3]mgl64.Vec3{v0, v1, v2}}
}

// Normal returns the unnormalized face normal (v1-v0)×(v2-v0).
// Its length is twice the area of the face.
func (f Face) Normal() mgl64.Vec3 {
	return f.Vertices[1].Sub(f.Vertices[0]).Cross(f.Vertices[2].Sub(f.Vertices[0]))
}

// Area returns the area of the face.
func (f Face) Area() float64 {
	return f.Normal().Len() / 2
}

// Degenerate reports whether the face has zero area.
func (f Face) Degenerate() bool {
	n := f.Normal()
	return n.Dot(n) == 0
}

// PlaneResidual returns the signed distance of p from the supporting plane of
// the face. It is zero for points on the plane and NaN for degenerate faces.
func (f Face) PlaneResidual(p mgl64.Vec3) float64 {
	n := f.Normal()
	return p.Sub(f.Vertices[0]).Dot(n) / n.Len()
}
