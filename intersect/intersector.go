// Package intersect finds where ray segments cross triangular faces.
//
// The test runs in three phases over every (ray, face) combination:
//
//  1. Plane straddle: both endpoints of the segment are classified against
//     the supporting plane of the face with orient.PlaneSides. Only pairs
//     whose endpoints fall on different sides go on.
//  2. Inside triangle: for the surviving pairs, the line through the segment
//     is oriented against each of the three edges (v0-v1, v1-v2, v2-v0) with
//     orient.TetraVolumeSigns. The line crosses the face interior when the
//     three signs agree.
//  3. Solve: the crossing parameter t and point are computed from the face
//     normal. Results that are not finite are dropped.
//
// There is no spatial acceleration: every combination is tested. Callers
// bound memory by passing faces in chunks (see the aperture package).
package intersect

import (
	"math"

	"github.com/akmonengine/aperture/mesh"
	"github.com/akmonengine/aperture/orient"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Intersector tests ray segments against faces in the selected precision.
// The zero value works in double precision.
type Intersector struct {
	Precision Precision
}

// Intersect tests every ray against every face. faceBase is added to the
// local face index to form the FaceId reported in each Hit, so a caller
// iterating over chunks of a larger mesh gets global ids.
//
// Degenerate faces and numerically degenerate solves never produce a hit.
// Only an unsupported precision is reported as an error.
func (x Intersector) Intersect(rays []mesh.Ray, faces []mesh.Face, faceBase int) (Result, error) {
	switch x.Precision {
	case Float64:
		ws := workspace64Pool.Get().(*workspace[mgl64.Vec3])
		defer workspace64Pool.Put(ws)
		return intersect[mgl64.Vec3, float64](ws, toVec64, rays, faces, faceBase)
	case Float32:
		ws := workspace32Pool.Get().(*workspace[mgl32.Vec3])
		defer workspace32Pool.Put(ws)
		return intersect[mgl32.Vec3, float32](ws, toVec32, rays, faces, faceBase)
	}
	return Result{}, x.Precision.Validate()
}

// Intersect tests every ray against every face in double precision.
func Intersect(rays []mesh.Ray, faces []mesh.Face) (Result, error) {
	return Intersector{}.Intersect(rays, faces, 0)
}

func toVec64(v mgl64.Vec3) mgl64.Vec3 {
	return v
}

func toVec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func intersect[V orient.Vector[V, S], S orient.Scalar](
	ws *workspace[V], convert func(mgl64.Vec3) V,
	rays []mesh.Ray, faces []mesh.Face, faceBase int,
) (Result, error) {
	nr, nf := len(rays), len(faces)
	ws.Reset(nr, nf)

	for i, r := range rays {
		ws.q0[i] = convert(r.First)
		ws.q1[i] = convert(r.Second)
	}
	for f, face := range faces {
		ws.v0[f] = convert(face.Vertices[0])
		ws.v1[f] = convert(face.Vertices[1])
		ws.v2[f] = convert(face.Vertices[2])

		// Zero area in the working precision: the face has no plane.
		n := ws.v1[f].Sub(ws.v0[f]).Cross(ws.v2[f].Sub(ws.v0[f]))
		ws.valid[f] = n.Dot(n) != 0
	}

	result := Result{Combinations: nr * nf}

	// Phase 1: plane straddle
	for f := 0; f < nf; f++ {
		if !ws.valid[f] {
			continue
		}
		if err := orient.PlaneSides[V, S](ws.side0, ws.q0, ws.v0[f], ws.v1[f], ws.v2[f]); err != nil {
			return Result{}, err
		}
		if err := orient.PlaneSides[V, S](ws.side1, ws.q1, ws.v0[f], ws.v1[f], ws.v2[f]); err != nil {
			return Result{}, err
		}
		for r := 0; r < nr; r++ {
			if ws.side0[r] != ws.side1[r] {
				ws.pairs = append(ws.pairs, pair{face: f, ray: r})
			}
		}
	}
	result.Candidates = len(ws.pairs)
	if result.Candidates == 0 {
		return result, nil
	}

	// Phase 2: inside triangle, batched over the gathered candidates
	ws.Gather()
	for k, p := range ws.pairs {
		ws.a[k], ws.b[k] = ws.q0[p.ray], ws.q1[p.ray]
		ws.p0[k], ws.p1[k], ws.p2[k] = ws.v0[p.face], ws.v1[p.face], ws.v2[p.face]
	}
	if err := orient.TetraVolumeSigns[V, S](ws.s3, ws.a, ws.b, ws.p0, ws.p1); err != nil {
		return Result{}, err
	}
	if err := orient.TetraVolumeSigns[V, S](ws.s4, ws.a, ws.b, ws.p1, ws.p2); err != nil {
		return Result{}, err
	}
	if err := orient.TetraVolumeSigns[V, S](ws.s5, ws.a, ws.b, ws.p2, ws.p0); err != nil {
		return Result{}, err
	}

	// Phase 3: solve
	result.Hits = make([]Hit, 0, result.Candidates)
	for k, p := range ws.pairs {
		if ws.s3[k] != ws.s4[k] || ws.s4[k] != ws.s5[k] {
			continue
		}
		result.Inside++

		point, t, ok := solve[V, S](ws.a[k], ws.b[k], ws.p0[k], ws.p1[k], ws.p2[k])
		if !ok {
			result.Degenerate++
			continue
		}
		result.Hits = append(result.Hits, Hit{
			Face:  faceBase + p.face,
			Ray:   p.ray,
			Point: point,
			T:     t,
		})
	}

	return result, nil
}

// solve returns the crossing of the line q0→q1 with the plane of the face
// v0, v1, v2. ok is false when the line is parallel to the plane or the
// result is not finite.
func solve[V orient.Vector[V, S], S orient.Scalar](q0, q1, v0, v1, v2 V) (point mgl64.Vec3, t float64, ok bool) {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	d := q1.Sub(q0)

	den := d.Dot(n)
	if den == 0 {
		return mgl64.Vec3{}, 0, false
	}
	ts := v0.Sub(q0).Dot(n) / den

	x, y, z := q0.Add(d.Mul(ts)).Elem()
	point = mgl64.Vec3{float64(x), float64(y), float64(z)}
	t = float64(ts)
	if !finite(t) || !finite(point[0]) || !finite(point[1]) || !finite(point[2]) {
		return mgl64.Vec3{}, 0, false
	}

	return point, t, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
