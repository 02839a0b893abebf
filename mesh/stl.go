package mesh

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deadsy/sdfx/render"
)

// LoadSTL reads an ASCII or binary STL file. The mesh is named after the
// file without its extension, and faces keep their order in the file.
func LoadSTL(path string) (*Mesh, error) {
	triangles, err := render.LoadSTL(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: load %s: %w", path, err)
	}

	m := fromTriangles(StemName(path), triangles)
	if m.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptySolid, path)
	}
	return m, nil
}

// StemName returns the base name of path without its extension.
func StemName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
