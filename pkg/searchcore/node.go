package searchcore

import "math"

// PredEdge is one discovered (predecessor -> this node) edge, kept for
// trajectory reconstruction (spec §4.6). action_cost may be +Inf for an
// edge the environment has since declared infeasible.
type PredEdge[K comparable] struct {
	PredKey    K
	ActionID   int
	ActionCost float64
}

// SuccEdge is one cached (this node -> successor) edge. Only populated by
// LPA*, which expands a node's successors at most once per cache lifetime
// (spec §4.5 step 3).
type SuccEdge[K comparable, C Coord] struct {
	SuccKey    K
	SuccCoord  C
	ActionID   int
	ActionCost float64
}

// Node is the per-state search record described in spec.md §3. G and Rhs
// are left at +Inf by NewNode; the engines (astar.Search, lpastar.Search)
// set the start node's values per the engine in use.
type Node[K comparable, C Coord] struct {
	Key   K
	Coord C

	G   float64
	Rhs float64
	H   float64

	Opened bool
	Closed bool

	// HeapIndex is this node's position in the owning StateSpace's heap,
	// or -1 if the node is not currently queued. It is maintained by
	// heap.go's Push/Pop/Remove/swap; other callers read it through InHeap.
	HeapIndex int

	PredEdges []PredEdge[K]
	SuccEdges []SuccEdge[K, C]

	// explored marks that SuccEdges was refreshed from the environment
	// during the current LPA* visit to this node (spec §4.5 step 3-4).
	explored bool
}

// NewNode allocates a Node with g = rhs = +Inf and the given heuristic
// value already computed (spec §4.2 get_or_create).
func NewNode[K comparable, C Coord](key K, coord C, h float64) *Node[K, C] {
	return &Node[K, C]{
		Key:       key,
		Coord:     coord,
		G:         math.Inf(1),
		Rhs:       math.Inf(1),
		H:         h,
		HeapIndex: -1,
	}
}

// LocallyConsistent reports whether g == rhs (spec §3 invariant 5).
func (n *Node[K, C]) LocallyConsistent() bool {
	return n.G == n.Rhs
}

// InHeap reports whether the node currently holds a live heap slot.
func (n *Node[K, C]) InHeap() bool {
	return n.HeapIndex >= 0
}

// MarkExplored records that SuccEdges was just populated from the
// environment during the current LPA* visit to this node (spec §4.5 step
// 3: "Mark this visit as explored").
func (n *Node[K, C]) MarkExplored() {
	n.explored = true
}

// WasExploredThisVisit reports whether MarkExplored was called during the
// current visit, i.e. whether the cached SuccEdges should be trusted as
// freshly queried rather than reused from an earlier expansion.
func (n *Node[K, C]) WasExploredThisVisit() bool {
	return n.explored
}

// ClearExploredThisVisit resets the explored flag once this visit's
// successor expansion is done.
func (n *Node[K, C]) ClearExploredThisVisit() {
	n.explored = false
}
