package intersect

import "github.com/go-gl/mathgl/mgl64"

// Hit is a confirmed crossing of a ray segment through a face.
type Hit struct {
	Face  int        // FaceId
	Ray   int        // RayId
	Point mgl64.Vec3 // crossing point
	T     float64    // parameter along the ray, Point = First + T*(Second-First)
}

// Result holds the confirmed hits of one Intersect call together with the
// number of (ray, face) combinations that survived each phase.
type Result struct {
	// Hits are ordered by FaceId, then RayId.
	Hits []Hit

	Combinations int // rays × faces tested
	Candidates   int // pairs whose segment straddles the face plane
	Inside       int // candidates whose line passes inside the triangle
	Degenerate   int // inside candidates dropped by the solve (parallel, NaN, Inf)
}
