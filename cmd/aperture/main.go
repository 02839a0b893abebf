// Command aperture loads STL structures (or builds a synthetic one) from a
// JSON config, probes each with a cylindrical grid of ray segments and writes
// the nearest hit of every ray, one document per structure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/akmonengine/aperture"
	"github.com/akmonengine/aperture/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

type cellOut struct {
	Index []int       `json:"index"`
	Hit   bool        `json:"hit"`
	Point *mgl64.Vec3 `json:"point,omitempty"`
	T     float64     `json:"t"`
	Face  int         `json:"face"`
}

type output struct {
	Mesh  string    `json:"mesh"`
	Faces int       `json:"faces"`
	Area  float64   `json:"area"`
	Shape []int     `json:"shape"`
	Mode  string    `json:"mode"`
	Merge string    `json:"merge"`
	Hits  int       `json:"hits"`
	Cells []cellOut `json:"cells"`
	Pairs [][2]int  `json:"pairs"`
}

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON config")
	outPath := flag.String("out", "", "output path of the synthetic mesh, overrides the config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *outPath != "" {
		cfg.Output = *outPath
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(cfg *Config) error {
	s, err := cfg.scheduler()
	if err != nil {
		return err
	}
	s.Events.Subscribe(aperture.CHUNK_DONE, func(event aperture.Event) {
		e := event.(aperture.ChunkDoneEvent)
		log.Printf("chunk %d/%d faces [%d,%d): %d candidates, %d confirmed, %d selected (%.0f%%)",
			e.Chunk+1, e.Chunks, e.FirstFace, e.EndFace, e.Candidates, e.Confirmed, e.Selected, 100*e.Progress())
	})
	s.Events.Subscribe(aperture.RUN_DONE, func(event aperture.Event) {
		e := event.(aperture.RunDoneEvent)
		log.Printf("done: %d/%d rays hit over %d chunks in %v", e.Hits, e.Rays, e.Chunks, e.Elapsed)
	})

	for _, src := range cfg.sources() {
		if err := probeSource(cfg, s, src); err != nil {
			return err
		}
	}
	return nil
}

// probeSource loads one structure, probes it and writes its document.
func probeSource(cfg *Config, s *aperture.Scheduler, src source) error {
	m, err := cfg.load(src)
	if err != nil {
		return err
	}
	m = m.Transformed(cfg.Origin.transform())
	bounds := m.Bounds()
	log.Printf("mesh %s: %d faces (%d degenerate), area %.4g, size %v",
		m.Name, m.FaceCount(), m.DegenerateCount(), m.Area(), bounds.Size())

	shape, rays, err := cfg.Probe.grid(bounds).Rays(bounds)
	if err != nil {
		return err
	}
	rs, err := aperture.NewRaySet(shape, rays)
	if err != nil {
		return err
	}
	log.Printf("probe: %d rays, shape %v", rs.Len(), shape)

	grid, err := s.Run(rs, m.Faces)
	if err != nil {
		return fmt.Errorf("%s: %w", m.Name, err)
	}

	doc, err := newOutput(m, s, grid)
	if err != nil {
		return err
	}
	return writeOutput(src.Output, doc)
}

func newOutput(m *mesh.Mesh, s *aperture.Scheduler, grid *aperture.Grid) (*output, error) {
	doc := &output{
		Mesh:  m.Name,
		Faces: m.FaceCount(),
		Area:  m.Area(),
		Shape: grid.Shape,
		Mode:  s.Mode.String(),
		Merge: s.Merge.String(),
		Hits:  grid.HitCount(),
		Cells: make([]cellOut, grid.Len()),
		Pairs: make([][2]int, len(grid.Pairs)),
	}

	for ray, c := range grid.Cells {
		idx, err := grid.Unravel(ray)
		if err != nil {
			return nil, err
		}
		doc.Cells[ray] = cellOut{Index: idx, Hit: c.Hit, Face: c.Face}
		if c.Hit {
			p := c.Point
			doc.Cells[ray].Point = &p
			doc.Cells[ray].T = c.T
		}
	}
	for i, p := range grid.Pairs {
		doc.Pairs[i] = [2]int{p.Face, p.Ray}
	}

	return doc, nil
}

func writeOutput(path string, doc *output) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}
