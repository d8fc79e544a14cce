package searchcore

import (
	"math"

	"github.com/yugo1103/motion-primitive-library/pkg/environment"
)

// Mode selects which calculate_key variant a StateSpace's heap is ordered
// by (spec §4.2). Planner.Replan flips an existing StateSpace from
// ModeAStar to ModeLPAStar between calls to get LPA*'s incrementality
// (spec §3 Lifecycle), so the heap's comparator always reads Mode live
// rather than capturing one variant at construction time.
type Mode int

const (
	// ModeAStar orders the heap by the scalar f = g + eps*h.
	ModeAStar Mode = iota
	// ModeLPAStar orders the heap lexicographically by
	// (min(g,rhs)+eps*h, min(g,rhs)), the standard LPA* key.
	ModeLPAStar
)

// StateSpace owns every Node ever created during one or more searches, the
// priority queue over them, and the bookkeeping (eps, dt, max_t,
// best_child) shared by the engines and by trajectory reconstruction.
// Reusing a StateSpace across successive LPA* calls is how LPA* achieves
// incrementality (spec §3 Lifecycle); clearing it destroys every Node.
// The queue's comparator dispatches on Mode on every comparison (see
// Less), so changing Mode after construction reorders the live heap
// correctly without rebuilding it from scratch.
type StateSpace[K comparable, C Coord, P any] struct {
	Eps   float64
	Dt    float64
	MaxT  float64
	Mode  Mode

	nodes map[K]*Node[K, C]
	queue *heap[K, C]

	// BestChild is the scratch list populated by trajectory
	// reconstruction (spec §4.6): the reconstructed chain in forward
	// (start->goal) order after a successful search.
	BestChild []*Node[K, C]

	expandIteration int
}

// NewStateSpace constructs an empty StateSpace. eps must be >= 1 (or 0 to
// disable the heuristic entirely, per spec.md §6's eps option); dt must be
// > 0.
func NewStateSpace[K comparable, C Coord, P any](mode Mode, eps, dt float64) *StateSpace[K, C, P] {
	ss := &StateSpace[K, C, P]{
		Eps:   eps,
		Dt:    dt,
		MaxT:  math.Inf(1),
		Mode:  mode,
		nodes: make(map[K]*Node[K, C]),
	}
	ss.queue = newHeap(ss.Less)
	return ss
}

// SetMode switches the StateSpace to mode and restores heap order over the
// nodes already queued. Planner.Replan uses this to move a StateSpace
// from ModeAStar to ModeLPAStar (and back for the next Plan) without
// losing the g/rhs state LPA* depends on for incrementality — unlike
// Clear, no Node is discarded.
func (ss *StateSpace[K, C, P]) SetMode(mode Mode) {
	ss.Mode = mode
	ss.queue.Reheapify()
}

func (ss *StateSpace[K, C, P]) lessAStar(a, b *Node[K, C]) bool {
	return ss.fAStar(a) < ss.fAStar(b)
}

func (ss *StateSpace[K, C, P]) fAStar(n *Node[K, C]) float64 {
	return n.G + ss.Eps*n.H
}

func (ss *StateSpace[K, C, P]) lessLPAStar(a, b *Node[K, C]) bool {
	af1, af2 := ss.calculateKeyLPA(a)
	bf1, bf2 := ss.calculateKeyLPA(b)
	if af1 != bf1 {
		return af1 < bf1
	}
	return af2 < bf2
}

func (ss *StateSpace[K, C, P]) calculateKeyLPA(n *Node[K, C]) (float64, float64) {
	m := math.Min(n.G, n.Rhs)
	return m + ss.Eps*n.H, m
}

// CalculateKey returns this StateSpace's priority for n: the scalar f for
// ModeAStar, or the lexicographic (f, min(g,rhs)) pair for ModeLPAStar
// (the second component is unused/zero in ModeAStar).
func (ss *StateSpace[K, C, P]) CalculateKey(n *Node[K, C]) (float64, float64) {
	if ss.Mode == ModeAStar {
		return ss.fAStar(n), 0
	}
	return ss.calculateKeyLPA(n)
}

// Less reports whether a has strictly smaller priority than b under this
// StateSpace's mode — used by LPA*'s termination test against the goal
// node's key.
func (ss *StateSpace[K, C, P]) Less(a, b *Node[K, C]) bool {
	if ss.Mode == ModeAStar {
		return ss.lessAStar(a, b)
	}
	return ss.lessLPAStar(a, b)
}

// GetOrCreate returns the existing Node for key, or allocates one with
// h = 0 when eps == 0 (heuristic disabled) and env.Heuristic(coord)
// otherwise (spec §4.2 get_or_create). Nodes are never evicted by this
// call even if they are never reached by the search.
func (ss *StateSpace[K, C, P]) GetOrCreate(key K, coord C, env environment.Environment[K, C, P]) *Node[K, C] {
	if n, ok := ss.nodes[key]; ok {
		return n
	}
	h := 0.0
	if ss.Eps != 0 {
		h = env.Heuristic(coord)
	}
	n := NewNode[K, C](key, coord, h)
	ss.nodes[key] = n
	return n
}

// Lookup returns the Node for key without creating one.
func (ss *StateSpace[K, C, P]) Lookup(key K) (*Node[K, C], bool) {
	n, ok := ss.nodes[key]
	return n, ok
}

// Push inserts n into the priority queue and marks it opened.
func (ss *StateSpace[K, C, P]) Push(n *Node[K, C]) {
	ss.queue.Push(n)
	n.Opened = true
}

// Pop removes and returns the minimum-priority node and counts the
// expansion (spec §4.4/§4.5 "Pop the Node with smallest f").
func (ss *StateSpace[K, C, P]) Pop() *Node[K, C] {
	ss.expandIteration++
	return ss.queue.Pop()
}

// Top peeks the minimum-priority node, for LPA*'s termination test.
func (ss *StateSpace[K, C, P]) Top() *Node[K, C] {
	return ss.queue.Top()
}

// Empty reports whether the priority queue has no entries.
func (ss *StateSpace[K, C, P]) Empty() bool {
	return ss.queue.Empty()
}

// Fix re-heapifies n after its priority fields (g/rhs/h) changed while it
// was already queued.
func (ss *StateSpace[K, C, P]) Fix(n *Node[K, C]) {
	ss.queue.Fix(n)
}

// Remove evicts n from the queue without closing it.
func (ss *StateSpace[K, C, P]) Remove(n *Node[K, C]) {
	ss.queue.Remove(n)
}

// UpdateNode recomputes n.Rhs as the minimum over its predecessor edges
// of pred.g + edge_cost, then re-enqueues or dequeues n to match (spec
// §4.2 update_node). It is LPA*'s update; Planner.NotifyEdgeCostChanged
// may call it while the StateSpace is still in ModeAStar after a Plan,
// and the SetMode call at the start of the next Replan reorders the
// queue under the LPA* key.
func (ss *StateSpace[K, C, P]) UpdateNode(n *Node[K, C], isStart bool) {
	if !isStart {
		best := math.Inf(1)
		for _, e := range n.PredEdges {
			pred, ok := ss.nodes[e.PredKey]
			if !ok {
				continue
			}
			if c := pred.G + e.ActionCost; c < best {
				best = c
			}
		}
		n.Rhs = best
	}

	if n.InHeap() {
		ss.Remove(n)
	}
	if n.G != n.Rhs && n.Coord.TimeT() <= ss.MaxT && !isStart {
		ss.Push(n)
	}
}

// ExpandIteration is the number of Pop calls made so far (spec §6
// accessor ss.expand_iteration).
func (ss *StateSpace[K, C, P]) ExpandIteration() int {
	return ss.expandIteration
}

// Nodes exposes the full Key -> Node table, for observability (spec §6
// "open/closed sets for observability") and for rendering.
func (ss *StateSpace[K, C, P]) Nodes() map[K]*Node[K, C] {
	return ss.nodes
}

// Clear destroys every Node and resets the queue and best_child, per spec
// §3 Lifecycle "Clearing a StateSpace destroys all Nodes."
func (ss *StateSpace[K, C, P]) Clear() {
	ss.nodes = make(map[K]*Node[K, C])
	ss.queue = newHeap(ss.Less)
	ss.BestChild = nil
	ss.expandIteration = 0
}
