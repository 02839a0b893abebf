package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const plateSTL = `solid plate
  facet normal 0 0 1
    outer loop
      vertex 0 0 1
      vertex 2 0 1
      vertex 0 2 1
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 2 0 1
      vertex 2 2 1
      vertex 0 2 1
    endloop
  endfacet
endsolid plate
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s failed: %v", name, err)
	}
	return path
}

func TestLoadSTL(t *testing.T) {
	m, err := LoadSTL(writeFile(t, "plate.stl", plateSTL))
	if err != nil {
		t.Fatalf("LoadSTL failed: %v", err)
	}

	if m.Name != "plate" {
		t.Errorf("expected the mesh to be named after the file, got %q", m.Name)
	}
	if m.FaceCount() != 2 {
		t.Fatalf("expected 2 faces, got %d", m.FaceCount())
	}
	expected := [3]mgl64.Vec3{{2, 0, 1}, {2, 2, 1}, {0, 2, 1}}
	if m.Faces[1].Vertices != expected {
		t.Errorf("expected faces in file order, got %v", m.Faces[1].Vertices)
	}
	if m.Area() != 4 {
		t.Errorf("expected area 4, got %v", m.Area())
	}
}

func TestLoadSTLErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSTL(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("no facets", func(t *testing.T) {
		content := "solid empty\n" + strings.Repeat("  comment line without geometry\n", 4) + "endsolid empty\n"
		_, err := LoadSTL(writeFile(t, "empty.stl", content))
		if !errors.Is(err, ErrEmptySolid) {
			t.Errorf("expected ErrEmptySolid, got %v", err)
		}
	})
}

func TestStemName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"parts/ring.stl", "ring"},
		{"ring.STL", "ring"},
		{"/abs/dir/coil.v2.stl", "coil.v2"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := StemName(tt.path); got != tt.expected {
			t.Errorf("StemName(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}
