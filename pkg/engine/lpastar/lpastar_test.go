package lpastar_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yugo1103/motion-primitive-library/pkg/engine/lpastar"
	"github.com/yugo1103/motion-primitive-library/pkg/environment"
	"github.com/yugo1103/motion-primitive-library/pkg/searchcore"
)

type lpaCoord struct{ t float64 }

func (c lpaCoord) TimeT() float64 { return c.t }

// chainLPAEnv is a zero-heuristic environment keyed by a fixed
// coord.t -> successor-list table, shared by this file's scenarios.
type chainLPAEnv struct {
	succ  map[float64][]environment.Successor[string, lpaCoord]
	goalT float64
}

func (e *chainLPAEnv) IsGoal(c lpaCoord) bool             { return c.t == e.goalT }
func (e *chainLPAEnv) Heuristic(c lpaCoord) float64       { return 0 }
func (e *chainLPAEnv) ForwardAction(c lpaCoord, actionID int) (string, error) { return "step", nil }
func (e *chainLPAEnv) Successors(c lpaCoord) []environment.Successor[string, lpaCoord] {
	return e.succ[c.t]
}

func newTrivialLPAChain() *chainLPAEnv {
	succ := map[float64][]environment.Successor[string, lpaCoord]{
		0: {{Key: "A", Coord: lpaCoord{t: 1}, ActionCost: 1, ActionID: 0}},
		1: {{Key: "B", Coord: lpaCoord{t: 2}, ActionCost: 1, ActionID: 0}},
		2: {{Key: "G", Coord: lpaCoord{t: 3}, ActionCost: 1, ActionID: 0}},
	}
	return &chainLPAEnv{succ: succ, goalT: 3}
}

func TestSearch_TrivialChain(t *testing.T) {
	env := newTrivialLPAChain()
	ss := searchcore.NewStateSpace[string, lpaCoord, string](searchcore.ModeLPAStar, 1, 1)

	res, err := lpastar.Search[string, lpaCoord, string](ss, lpaCoord{t: 0}, "S", env, lpastar.Options{})

	assert.NoError(t, err)
	assert.Equal(t, 3.0, res.GoalG)
}

// diamondEnv is a S -> {A, B} -> G diamond with A the cheap route and B
// the expensive detour, used by TestSearch_IncrementalReplan (spec.md §8
// seed scenario 5) to exercise LPA*'s rhs re-derivation when an edge on
// the current best path is blocked mid-lifecycle.
type diamondEnv struct{}

func (e *diamondEnv) IsGoal(c lpaCoord) bool       { return c.t == 9 }
func (e *diamondEnv) Heuristic(c lpaCoord) float64 { return 0 }
func (e *diamondEnv) ForwardAction(c lpaCoord, actionID int) (string, error) { return "step", nil }
func (e *diamondEnv) Successors(c lpaCoord) []environment.Successor[string, lpaCoord] {
	switch c.t {
	case 0: // S
		return []environment.Successor[string, lpaCoord]{
			{Key: "A", Coord: lpaCoord{t: 1}, ActionCost: 1, ActionID: 0},
			{Key: "B", Coord: lpaCoord{t: 2}, ActionCost: 3, ActionID: 1},
		}
	case 1: // A
		return []environment.Successor[string, lpaCoord]{
			{Key: "G", Coord: lpaCoord{t: 9}, ActionCost: 1, ActionID: 0},
		}
	case 2: // B
		return []environment.Successor[string, lpaCoord]{
			{Key: "G", Coord: lpaCoord{t: 9}, ActionCost: 1, ActionID: 0},
		}
	default:
		return nil
	}
}

func TestSearch_IncrementalReplan(t *testing.T) {
	env := &diamondEnv{}
	ss := searchcore.NewStateSpace[string, lpaCoord, string](searchcore.ModeLPAStar, 1, 1)

	first, err := lpastar.Search[string, lpaCoord, string](ss, lpaCoord{t: 0}, "S", env, lpastar.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 2.0, first.GoalG) // S -> A -> G
	expansionsAfterFirst := ss.ExpandIteration()

	// Block the A -> G edge the way a caller who has already discovered
	// it would: mutate G's cached predecessor-edge cost in place, then
	// tell the StateSpace that node's rhs needs re-deriving (this is the
	// cache mutation Planner.NotifyEdgeCostChanged assumes already
	// happened by the time it calls UpdateNode).
	gNode, ok := ss.Lookup("G")
	assert.True(t, ok)
	blockedAny := false
	for i, pe := range gNode.PredEdges {
		if pe.PredKey == "A" {
			gNode.PredEdges[i].ActionCost = math.Inf(1)
			blockedAny = true
		}
	}
	assert.True(t, blockedAny, "G should have a cached predecessor edge from A after the first search")
	ss.UpdateNode(gNode, false)

	second, err := lpastar.Search[string, lpaCoord, string](ss, lpaCoord{t: 0}, "S", env, lpastar.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 4.0, second.GoalG) // rerouted via S -> B -> G
	assert.GreaterOrEqual(t, second.GoalG, first.GoalG-1e-9)

	incrementalExpansions := ss.ExpandIteration() - expansionsAfterFirst

	fresh := searchcore.NewStateSpace[string, lpaCoord, string](searchcore.ModeLPAStar, 1, 1)
	blockedEnv := &blockedDiamondEnv{}
	freshRes, err := lpastar.Search[string, lpaCoord, string](fresh, lpaCoord{t: 0}, "S", blockedEnv, lpastar.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 4.0, freshRes.GoalG)

	assert.Less(t, incrementalExpansions, fresh.ExpandIteration(),
		"re-planning from the previous frontier should expand fewer nodes than a cold search against the new costs")
}

// blockedDiamondEnv is diamondEnv with the A -> G edge already infeasible,
// used as the "searched from scratch against the new costs" baseline.
type blockedDiamondEnv struct{}

func (e *blockedDiamondEnv) IsGoal(c lpaCoord) bool       { return c.t == 9 }
func (e *blockedDiamondEnv) Heuristic(c lpaCoord) float64 { return 0 }
func (e *blockedDiamondEnv) ForwardAction(c lpaCoord, actionID int) (string, error) {
	return "step", nil
}
func (e *blockedDiamondEnv) Successors(c lpaCoord) []environment.Successor[string, lpaCoord] {
	switch c.t {
	case 0:
		return []environment.Successor[string, lpaCoord]{
			{Key: "A", Coord: lpaCoord{t: 1}, ActionCost: 1, ActionID: 0},
			{Key: "B", Coord: lpaCoord{t: 2}, ActionCost: 3, ActionID: 1},
		}
	case 1:
		return []environment.Successor[string, lpaCoord]{
			{Key: "G", Coord: lpaCoord{t: 9}, ActionCost: math.Inf(1), ActionID: 0},
		}
	case 2:
		return []environment.Successor[string, lpaCoord]{
			{Key: "G", Coord: lpaCoord{t: 9}, ActionCost: 1, ActionID: 0},
		}
	default:
		return nil
	}
}

// TestSearch_TimeBounded is seed scenario 6 (spec.md §8): with an
// unreachable goal and a max_t budget, Search must still terminate and
// report the best node found within the horizon rather than looping.
func TestSearch_TimeBounded(t *testing.T) {
	succ := map[float64][]environment.Successor[string, lpaCoord]{
		0: {{Key: "A", Coord: lpaCoord{t: 1}, ActionCost: 1, ActionID: 0}},
		1: {{Key: "B", Coord: lpaCoord{t: 2}, ActionCost: 1, ActionID: 0}},
		2: {{Key: "C", Coord: lpaCoord{t: 3}, ActionCost: 1, ActionID: 0}},
	}
	env := &chainLPAEnv{succ: succ, goalT: 99} // unreachable
	ss := searchcore.NewStateSpace[string, lpaCoord, string](searchcore.ModeLPAStar, 1, 1)

	res, err := lpastar.Search[string, lpaCoord, string](ss, lpaCoord{t: 0}, "S", env, lpastar.Options{MaxT: 2})

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, res.Goal.Coord.TimeT(), 2.0)
}

func TestSearch_MaxExpandExhausted(t *testing.T) {
	env := newTrivialLPAChain()
	ss := searchcore.NewStateSpace[string, lpaCoord, string](searchcore.ModeLPAStar, 1, 1)

	_, err := lpastar.Search[string, lpaCoord, string](ss, lpaCoord{t: 0}, "S", env, lpastar.Options{MaxExpand: 1})

	assert.Error(t, err)
}
