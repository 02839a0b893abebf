package mesh

import "github.com/go-gl/mathgl/mgl64"

// Transform re-expresses geometry in a frame whose origin sits at Position
// and whose axes are rotated by Rotation: a world point p maps to
// Rotation⁻¹·(p - Position).
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Origin returns a transform that only shifts the origin to position.
func Origin(position mgl64.Vec3) Transform {
	return Transform{Position: position, Rotation: mgl64.QuatIdent()}
}

// Apply maps a world point into the transform frame.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	local := p.Sub(t.Position)
	// The zero Quat is not a rotation; treat it as identity.
	if t.Rotation == (mgl64.Quat{}) {
		return local
	}
	return t.Rotation.Inverse().Rotate(local)
}

// ApplyFaces returns a copy of faces mapped into the transform frame.
func (t Transform) ApplyFaces(faces []Face) []Face {
	out := make([]Face, len(faces))
	for i, f := range faces {
		for j, v := range f.Vertices {
			out[i].Vertices[j] = t.Apply(v)
		}
	}
	return out
}
