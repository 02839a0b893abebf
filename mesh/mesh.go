package mesh

// Mesh is a named, ordered collection of faces. The position of a face in
// Faces is its FaceId.
type Mesh struct {
	Name  string
	Faces []Face
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Bounds returns the box enclosing the mesh.
func (m *Mesh) Bounds() AABB {
	return Bounds(m.Faces)
}

// Transformed returns a copy of the mesh expressed in the frame of t.
func (m *Mesh) Transformed(t Transform) *Mesh {
	return &Mesh{Name: m.Name, Faces: t.ApplyFaces(m.Faces)}
}

// DegenerateCount returns how many faces have zero area.
func (m *Mesh) DegenerateCount() int {
	n := 0
	for _, f := range m.Faces {
		if f.Degenerate() {
			n++
		}
	}
	return n
}

// Area returns the total surface area of the faces.
func (m *Mesh) Area() float64 {
	area := 0.0
	for _, f := range m.Faces {
		area += f.Area()
	}
	return area
}
