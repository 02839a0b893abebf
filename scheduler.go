// Package aperture probes a triangulated structure with a large set of ray
// segments and records, per ray, where it first crosses the surface.
//
// The Scheduler splits the faces into contiguous chunks so that the candidate
// buffers of the intersector stay proportional to ChunkSize × rays instead of
// faces × rays. Each chunk is intersected, clustered by ray and reduced to
// its nearest hit per ray, then merged into the output Grid.
package aperture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akmonengine/aperture/intersect"
	"github.com/akmonengine/aperture/mesh"
	"github.com/akmonengine/aperture/resolve"
)

const (
	DEFAULT_WORKERS    = 1
	DEFAULT_CHUNK_SIZE = 200
)

var (
	// ErrInvalidChunkSize is returned for a negative chunk size.
	ErrInvalidChunkSize = errors.New("aperture: invalid chunk size")
	// ErrUnsupportedMerge is returned for an unknown MergePolicy.
	ErrUnsupportedMerge = errors.New("aperture: unsupported merge policy")
)

// MergePolicy decides how a chunk's nearest hit for a ray combines with the
// hit already recorded from earlier chunks.
type MergePolicy uint8

const (
	// MergeNearest keeps the hit with the smallest t across all chunks. On
	// equal t the earlier chunk, which holds the lower FaceId, is kept. The
	// result does not depend on ChunkSize or Workers.
	MergeNearest MergePolicy = iota
	// MergeLastChunk overwrites the recorded hit with the hit of every later
	// chunk that reaches the ray, whatever its t. A ray then holds the
	// nearest hit of the last chunk that crossed it, which is not the global
	// nearest when an earlier chunk held a closer face. Kept to reproduce
	// results stored by the sequential overwrite scheme.
	MergeLastChunk
)

func (m MergePolicy) String() string {
	switch m {
	case MergeNearest:
		return "nearest"
	case MergeLastChunk:
		return "last-chunk"
	}
	return fmt.Sprintf("MergePolicy(%d)", uint8(m))
}

// Validate returns ErrUnsupportedMerge if m is not a known policy.
func (m MergePolicy) Validate() error {
	if m > MergeLastChunk {
		return fmt.Errorf("%w: %d", ErrUnsupportedMerge, uint8(m))
	}
	return nil
}

// ParseMergePolicy parses "nearest" (or the empty string) and "last-chunk"
// (or "overwrite").
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return MergeNearest, nil
	case "last-chunk", "overwrite":
		return MergeLastChunk, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMerge, s)
}

// Scheduler intersects a RaySet with a face list chunk by chunk and merges
// the per-chunk nearest hits into a Grid. The zero value is ready to use.
type Scheduler struct {
	// Faces per chunk. Zero means DEFAULT_CHUNK_SIZE; values past the face
	// count mean a single chunk.
	ChunkSize int
	// Chunks processed concurrently. Peak memory grows with Workers × ChunkSize.
	Workers   int
	Precision intersect.Precision
	// Mode decides which confirmed pairs are reported in Grid.Pairs. The grid
	// cells always hold the nearest hit.
	Mode  resolve.Mode
	Merge MergePolicy

	Events Events
}

// chunkResult carries one chunk from the workers to the merging goroutine.
type chunkResult struct {
	index      int
	start, end int
	result     intersect.Result
	selected   []intersect.Hit // nearest hit per ray
	retained   []intersect.Hit // hits reported in Grid.Pairs (tails mode)
	err        error
}

func (s *Scheduler) validate() error {
	if s.ChunkSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChunkSize, s.ChunkSize)
	}
	if err := s.Precision.Validate(); err != nil {
		return err
	}
	if err := s.Mode.Validate(); err != nil {
		return err
	}
	return s.Merge.Validate()
}

// Run intersects every ray with every face and returns the resolved grid.
// Configuration and shape errors are reported before any chunk is processed.
func (s *Scheduler) Run(rays RaySet, faces []mesh.Face) (*Grid, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := rays.Validate(); err != nil {
		return nil, err
	}

	// Events left from an aborted run belong to no grid.
	s.Events.discard()

	started := time.Now()
	chunkSize := s.ChunkSize
	if chunkSize == 0 {
		chunkSize = DEFAULT_CHUNK_SIZE
	}
	chunkSize = min(chunkSize, max(len(faces), 1))
	chunks := (len(faces) + chunkSize - 1) / chunkSize
	workers := min(max(DEFAULT_WORKERS, s.Workers), max(chunks, 1))

	grid := newGrid(rays.Shape, rays.Len())
	results := make([]chunkResult, workers)

	// Rounds of up to `workers` chunks run concurrently; each round is merged
	// in chunk order by this goroutine before the next one starts.
	for first := 0; first < chunks; first += workers {
		round := min(workers, chunks-first)
		task(workers, round, func(i int) {
			results[i] = s.processChunk(first+i, chunkSize, rays, faces)
		})

		for i := 0; i < round; i++ {
			if results[i].err != nil {
				s.Events.discard()
				return nil, results[i].err
			}
			s.merge(grid, &results[i], chunks)
			results[i] = chunkResult{}
		}
		s.Events.flush()
	}

	if s.Mode == resolve.Nearest {
		grid.Pairs = grid.resolvedPairs()
	}

	s.Events.emit(RunDoneEvent{
		Rays:    rays.Len(),
		Faces:   len(faces),
		Chunks:  chunks,
		Hits:    grid.HitCount(),
		Elapsed: time.Since(started),
	})
	s.Events.flush()

	return grid, nil
}

// processChunk intersects the rays with faces of chunk index and reduces the
// confirmed hits to the nearest one per ray.
func (s *Scheduler) processChunk(index, chunkSize int, rays RaySet, faces []mesh.Face) chunkResult {
	start := index * chunkSize
	end := min(start+chunkSize, len(faces))
	cr := chunkResult{index: index, start: start, end: end}

	x := intersect.Intersector{Precision: s.Precision}
	cr.result, cr.err = x.Intersect(rays.Rays, faces[start:end], start)
	if cr.err != nil {
		return cr
	}

	ix := resolve.NewIndex(rays.Len())
	ix.Build(cr.result.Hits)
	cr.selected, cr.err = resolve.Select(cr.result.Hits, ix, resolve.Nearest)
	if cr.err != nil || s.Mode != resolve.Tails {
		return cr
	}
	cr.retained, cr.err = resolve.Select(cr.result.Hits, ix, resolve.Tails)

	return cr
}

// merge writes the selected hits of a chunk into the grid. Only the merging
// goroutine touches the grid.
func (s *Scheduler) merge(grid *Grid, cr *chunkResult, chunks int) {
	for _, h := range cr.selected {
		cell := &grid.Cells[h.Ray]
		if s.Merge == MergeNearest && cell.Hit && cell.T <= h.T {
			continue
		}
		*cell = Cell{Hit: true, Point: h.Point, T: h.T, Face: h.Face}
	}

	for _, h := range cr.retained {
		grid.Pairs = append(grid.Pairs, Pair{Face: h.Face, Ray: h.Ray})
	}

	s.Events.emit(ChunkDoneEvent{
		Chunk:        cr.index,
		Chunks:       chunks,
		FirstFace:    cr.start,
		EndFace:      cr.end,
		Combinations: cr.result.Combinations,
		Candidates:   cr.result.Candidates,
		Inside:       cr.result.Inside,
		Degenerate:   cr.result.Degenerate,
		Confirmed:    len(cr.result.Hits),
		Selected:     len(cr.selected),
	})
}
