package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akmonengine/aperture"
	"github.com/akmonengine/aperture/intersect"
	"github.com/akmonengine/aperture/mesh"
	"github.com/akmonengine/aperture/probe"
	"github.com/akmonengine/aperture/resolve"
	"github.com/deadsy/sdfx/sdf"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultOutput = "aperture.json"
	DefaultNR     = 10
	DefaultNTheta = 36
	DefaultNZ     = 50
)

type MeshCfg struct {
	Kind string `json:"kind"` // "tube" or "box"
	Name string `json:"name,omitempty"`
	// Tube
	Height float64 `json:"height,omitempty"`
	Outer  float64 `json:"outer,omitempty"`
	Inner  float64 `json:"inner,omitempty"`
	// Box
	Size   mgl64.Vec3 `json:"size"`
	Center mgl64.Vec3 `json:"center"`

	Cells int `json:"cells,omitempty"` // marching cubes resolution
}

// OriginCfg places the probing frame. Rotation is in degrees, applied in
// X, Y, Z order.
type OriginCfg struct {
	Position mgl64.Vec3 `json:"position"`
	RotDeg   mgl64.Vec3 `json:"rotDeg"`
}

type ProbeCfg struct {
	NR     int     `json:"nr"`
	NTheta int     `json:"ntheta"`
	NZ     int     `json:"nz"`
	RMax   float64 `json:"rmax"`
	Margin float64 `json:"margin,omitempty"`
}

type SchedulerCfg struct {
	ChunkSize int    `json:"chunkSize,omitempty"`
	Workers   int    `json:"workers,omitempty"`
	Precision string `json:"precision,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Merge     string `json:"merge,omitempty"`
}

type Config struct {
	// Files lists STL structures to probe, each written to its own output
	// document. When empty the synthetic Mesh is probed instead.
	Files     []string     `json:"files,omitempty"`
	OutputDir string       `json:"outputDir,omitempty"`
	Mesh      MeshCfg      `json:"mesh"`
	Origin    OriginCfg    `json:"origin"`
	Probe     ProbeCfg     `json:"probe"`
	Scheduler SchedulerCfg `json:"scheduler"`
	Output    string       `json:"output,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	// Defaults / validation
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Probe.NR <= 0 {
		cfg.Probe.NR = DefaultNR
	}
	if cfg.Probe.NTheta <= 0 {
		cfg.Probe.NTheta = DefaultNTheta
	}
	if cfg.Probe.NZ <= 0 {
		cfg.Probe.NZ = DefaultNZ
	}
	if cfg.Mesh.Name == "" {
		cfg.Mesh.Name = cfg.Mesh.Kind
	}
	if _, err := cfg.scheduler(); err != nil {
		return nil, err
	}
	if len(cfg.Files) > 0 && cfg.Mesh.Kind != "" {
		return nil, fmt.Errorf("config sets both files and a %s mesh", cfg.Mesh.Kind)
	}
	if len(cfg.Files) == 0 && cfg.Mesh.Kind == "" {
		return nil, fmt.Errorf("config has no files and no mesh")
	}
	return &cfg, nil
}

// source is one structure to probe and where its result goes.
type source struct {
	File   string // empty for the configured solid
	Output string
}

// sources lists the structures in the order they are probed. The result of
// an STL file is written as <stem>.json next to it, or in OutputDir.
func (cfg *Config) sources() []source {
	if len(cfg.Files) == 0 {
		return []source{{Output: cfg.Output}}
	}

	out := make([]source, len(cfg.Files))
	for i, f := range cfg.Files {
		dir := cfg.OutputDir
		if dir == "" {
			dir = filepath.Dir(f)
		}
		out[i] = source{File: f, Output: filepath.Join(dir, mesh.StemName(f)+".json")}
	}
	return out
}

func (cfg *Config) load(src source) (*mesh.Mesh, error) {
	if src.File == "" {
		return cfg.Mesh.build()
	}
	return mesh.LoadSTL(src.File)
}

// solid builds the configured structure as a signed distance field.
func (c MeshCfg) solid() (sdf.SDF3, error) {
	switch strings.ToLower(c.Kind) {
	case "tube":
		return mesh.Tube(c.Height, c.Outer, c.Inner)
	case "box":
		return mesh.Box(c.Size, c.Center)
	}
	return nil, fmt.Errorf("unknown mesh kind %q", c.Kind)
}

func (c MeshCfg) build() (*mesh.Mesh, error) {
	s, err := c.solid()
	if err != nil {
		return nil, err
	}
	return mesh.FromSDF(c.Name, s, c.Cells)
}

func (c OriginCfg) transform() mesh.Transform {
	t := mesh.Origin(c.Position)
	if c.RotDeg != (mgl64.Vec3{}) {
		t.Rotation = mgl64.AnglesToQuat(
			mgl64.DegToRad(c.RotDeg.X()),
			mgl64.DegToRad(c.RotDeg.Y()),
			mgl64.DegToRad(c.RotDeg.Z()),
			mgl64.XYZ,
		)
	}
	return t
}

func (c ProbeCfg) grid(bounds mesh.AABB) probe.Cylindrical {
	return probe.Cylindrical{
		NR:     c.NR,
		NTheta: c.NTheta,
		NZ:     c.NZ,
		RMax:   c.rmax(bounds),
		Margin: c.Margin,
	}
}

// rmax falls back to the largest radial extent of the bounds.
func (c ProbeCfg) rmax(bounds mesh.AABB) float64 {
	if c.RMax > 0 {
		return c.RMax
	}
	r := 0.0
	for _, x := range []float64{bounds.Min.X(), bounds.Max.X()} {
		for _, y := range []float64{bounds.Min.Y(), bounds.Max.Y()} {
			r = max(r, mgl64.Vec2{x, y}.Len())
		}
	}
	return r
}

func (cfg *Config) scheduler() (*aperture.Scheduler, error) {
	c := cfg.Scheduler
	if c.ChunkSize < 0 {
		return nil, fmt.Errorf("%w: %d", aperture.ErrInvalidChunkSize, c.ChunkSize)
	}
	precision, err := intersect.ParsePrecision(c.Precision)
	if err != nil {
		return nil, err
	}
	mode, err := resolve.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	merge, err := aperture.ParseMergePolicy(c.Merge)
	if err != nil {
		return nil, err
	}

	return &aperture.Scheduler{
		ChunkSize: c.ChunkSize,
		Workers:   c.Workers,
		Precision: precision,
		Mode:      mode,
		Merge:     merge,
		Events:    aperture.NewEvents(),
	}, nil
}
