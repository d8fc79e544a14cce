// Package trajectory reconstructs an ordered primitive sequence from a
// terminal search Node (spec.md §4.6) and fits smooth polynomials between
// the discrete states that sequence visits (spec.md §4.9, C10).
package trajectory

import (
	"math"

	"github.com/yugo1103/motion-primitive-library/domain"
	"github.com/yugo1103/motion-primitive-library/pkg/environment"
	"github.com/yugo1103/motion-primitive-library/pkg/searchcore"
)

// Reconstruct walks predecessors from goal back to the node whose key is
// startKey, selecting at each step the minimum (pred.g + action_cost)
// edge (ties broken toward the predecessor with larger g, to prefer the
// freshest expansion path and avoid oscillation through equal-cost
// ancestors), and returns the primitives start->goal in forward order.
// ss.BestChild is populated with the same chain, also in forward order.
//
// If reconstruction hits a node whose predecessors all carry
// infinite-cost edges, it stops and returns the partial, start-side
// truncated primitive list built so far alongside ErrTraceBackFailure —
// callers decide whether a partial trajectory is useful.
func Reconstruct[K comparable, C searchcore.Coord, P any](
	ss *searchcore.StateSpace[K, C, P],
	goal *searchcore.Node[K, C],
	startKey K,
	env environment.Environment[K, C, P],
) ([]P, error) {

	ss.BestChild = nil
	var primitives []P

	curr := goal
	for len(curr.PredEdges) > 0 {
		ss.BestChild = append(ss.BestChild, curr)

		pred, edge, ok := bestPredecessor(ss, curr)
		if !ok {
			reverseChain(ss.BestChild)
			return reversed(primitives), domain.WrapErrorf(nil, domain.ErrTraceBackFailure, "no finite-cost predecessor edge for node %v", curr.Key)
		}

		prim, err := env.ForwardAction(pred.Coord, edge.ActionID)
		if err != nil {
			reverseChain(ss.BestChild)
			return reversed(primitives), domain.WrapErrorf(err, domain.ErrTraceBackFailure, "forward_action failed replaying action %d from predecessor", edge.ActionID)
		}
		primitives = append(primitives, prim)

		curr = pred
		if curr.Key == startKey {
			ss.BestChild = append(ss.BestChild, curr)
			break
		}
	}

	reverseChain(ss.BestChild)
	return reversed(primitives), nil
}

// bestPredecessor picks the (pred.g + action_cost)-minimizing predecessor
// edge of n, breaking ties toward the predecessor with the larger g.
func bestPredecessor[K comparable, C searchcore.Coord, P any](ss *searchcore.StateSpace[K, C, P], n *searchcore.Node[K, C]) (*searchcore.Node[K, C], searchcore.PredEdge[K], bool) {
	var (
		best     *searchcore.Node[K, C]
		bestEdge searchcore.PredEdge[K]
		bestCost = math.Inf(1)
		found    bool
	)
	for _, e := range n.PredEdges {
		pred, ok := ss.Lookup(e.PredKey)
		if !ok {
			continue
		}
		cost := pred.G + e.ActionCost
		if math.IsInf(cost, 1) {
			continue
		}
		switch {
		case !found:
			best, bestEdge, bestCost, found = pred, e, cost, true
		case cost < bestCost:
			best, bestEdge, bestCost = pred, e, cost
		case cost == bestCost && pred.G > best.G:
			best, bestEdge = pred, e
		}
	}
	return best, bestEdge, found
}

func reversed[P any](ps []P) []P {
	out := make([]P, len(ps))
	for i, p := range ps {
		out[len(ps)-1-i] = p
	}
	return out
}

func reverseChain[K comparable, C searchcore.Coord](chain []*searchcore.Node[K, C]) {
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
}
