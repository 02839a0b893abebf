// Package resolve groups confirmed hits by ray and reduces each group to the
// hits a caller keeps.
package resolve

import "github.com/akmonengine/aperture/intersect"

// Entry locates one hit of a ray: Candidate is its position in the hit list
// the Index was built from, Face its FaceId.
type Entry struct {
	Candidate int
	Face      int
}

// Index maps RayId to the entries of the hits on that ray.
//
// All entries live in one flat arena. The entries of ray r occupy
// arena[offsets[r]:offsets[r+1]], in the order the hits were given to Build,
// so a hit list ordered by FaceId yields per-ray lists ordered by FaceId.
// Buffers are reused across Build calls.
type Index struct {
	numRays int
	offsets []int
	arena   []Entry
	rays    []int
}

// NewIndex creates an index for RayIds in [0, numRays).
func NewIndex(numRays int) *Index {
	return &Index{
		numRays: numRays,
		offsets: make([]int, numRays+1),
	}
}

// Clear empties the index, keeping its buffers.
func (ix *Index) Clear() {
	clear(ix.offsets)
	ix.arena = ix.arena[:0]
	ix.rays = ix.rays[:0]
}

// Build clusters hits by ray. Hits with a RayId outside the index domain are
// a programming error and panic.
func (ix *Index) Build(hits []intersect.Hit) {
	ix.Clear()

	// Count, then prefix sum into start offsets shifted by one slot.
	for _, h := range hits {
		ix.offsets[h.Ray+1]++
	}
	for r := 0; r < ix.numRays; r++ {
		if ix.offsets[r+1] > 0 {
			ix.rays = append(ix.rays, r)
		}
		ix.offsets[r+1] += ix.offsets[r]
	}

	if cap(ix.arena) < len(hits) {
		ix.arena = make([]Entry, len(hits))
	}
	ix.arena = ix.arena[:len(hits)]

	// Fill, using offsets[r] as the write cursor of ray r. Afterwards every
	// cursor has advanced to the start of the next ray.
	for i, h := range hits {
		ix.arena[ix.offsets[h.Ray]] = Entry{Candidate: i, Face: h.Face}
		ix.offsets[h.Ray]++
	}
	copy(ix.offsets[1:], ix.offsets[:ix.numRays])
	ix.offsets[0] = 0
}

// Entries returns the entries of ray in build order. The slice aliases the
// index and is valid until the next Build or Clear.
func (ix *Index) Entries(ray int) []Entry {
	if ray < 0 || ray >= ix.numRays {
		return nil
	}
	return ix.arena[ix.offsets[ray]:ix.offsets[ray+1]]
}

// Rays returns the RayIds with at least one hit, in ascending order.
func (ix *Index) Rays() []int {
	return ix.rays
}

// Len returns the total number of clustered hits.
func (ix *Index) Len() int {
	return len(ix.arena)
}
