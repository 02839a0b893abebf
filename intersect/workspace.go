package intersect

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const workspaceInitialCapacity = 64

// pair is a (face, ray) combination that passed the plane-straddle test.
// face is local to the faces passed to Intersect.
type pair struct {
	face, ray int
}

// workspace holds every scratch buffer of one Intersect call. Buffers only
// grow, so a workspace taken from the pool usually allocates nothing.
type workspace[V any] struct {
	// Ray endpoints and face vertices converted to the working precision.
	q0, q1 []V
	v0     []V
	v1     []V
	v2     []V
	valid  []bool

	// Plane side of each ray endpoint for the current face.
	side0, side1 []bool

	pairs []pair

	// Candidate operands gathered for the batched inside-triangle test.
	a, b       []V
	p0, p1, p2 []V
	s3, s4, s5 []bool
}

var workspace64Pool = sync.Pool{
	New: func() interface{} {
		return newWorkspace[mgl64.Vec3]()
	},
}

var workspace32Pool = sync.Pool{
	New: func() interface{} {
		return newWorkspace[mgl32.Vec3]()
	},
}

func newWorkspace[V any]() *workspace[V] {
	return &workspace[V]{
		pairs: make([]pair, 0, workspaceInitialCapacity),
	}
}

// Reset sizes the per-ray and per-face buffers for nr rays and nf faces and
// clears the candidate list.
func (w *workspace[V]) Reset(nr, nf int) {
	w.q0 = resize(w.q0, nr)
	w.q1 = resize(w.q1, nr)
	w.side0 = resize(w.side0, nr)
	w.side1 = resize(w.side1, nr)

	w.v0 = resize(w.v0, nf)
	w.v1 = resize(w.v1, nf)
	w.v2 = resize(w.v2, nf)
	w.valid = resize(w.valid, nf)

	w.pairs = w.pairs[:0]
}

// Gather sizes the candidate operand buffers for the current pair list.
func (w *workspace[V]) Gather() {
	n := len(w.pairs)
	w.a = resize(w.a, n)
	w.b = resize(w.b, n)
	w.p0 = resize(w.p0, n)
	w.p1 = resize(w.p1, n)
	w.p2 = resize(w.p2, n)
	w.s3 = resize(w.s3, n)
	w.s4 = resize(w.s4, n)
	w.s5 = resize(w.s5, n)
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
