package trajectory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yugo1103/motion-primitive-library/pkg/environment"
	"github.com/yugo1103/motion-primitive-library/pkg/searchcore"
	"github.com/yugo1103/motion-primitive-library/pkg/trajectory"
)

type recCoord struct{ t float64 }

func (c recCoord) TimeT() float64 { return c.t }

type recEnv struct{}

func (e *recEnv) IsGoal(c recCoord) bool                                 { return false }
func (e *recEnv) Heuristic(c recCoord) float64                           { return 0 }
func (e *recEnv) Successors(c recCoord) []environment.Successor[string, recCoord] { return nil }
func (e *recEnv) ForwardAction(c recCoord, actionID int) (string, error) {
	switch actionID {
	case 0:
		return "forward", nil
	case 1:
		return "turn_left", nil
	default:
		return "turn_right", nil
	}
}

// chain builds S -(0:forward)-> A -(1:turn_left)-> G on a fresh
// StateSpace with each node's g already settled, mirroring what a
// completed A*/LPA* run leaves behind before Reconstruct walks it.
func chain(t *testing.T) (*searchcore.StateSpace[string, recCoord, string], *searchcore.Node[string, recCoord]) {
	ss := searchcore.NewStateSpace[string, recCoord, string](searchcore.ModeAStar, 1, 1)
	env := &recEnv{}

	s := ss.GetOrCreate("S", recCoord{t: 0}, env)
	s.G = 0
	a := ss.GetOrCreate("A", recCoord{t: 1}, env)
	a.G = 1
	a.PredEdges = []searchcore.PredEdge[string]{{PredKey: "S", ActionID: 0, ActionCost: 1}}
	g := ss.GetOrCreate("G", recCoord{t: 2}, env)
	g.G = 2
	g.PredEdges = []searchcore.PredEdge[string]{{PredKey: "A", ActionID: 1, ActionCost: 1}}

	return ss, g
}

func TestReconstruct_Chain(t *testing.T) {
	ss, goal := chain(t)
	env := &recEnv{}

	prims, err := trajectory.Reconstruct[string, recCoord, string](ss, goal, "S", env)

	assert.NoError(t, err)
	assert.Equal(t, []string{"forward", "turn_left"}, prims)
	assert.Len(t, ss.BestChild, 3)
	assert.Equal(t, "S", ss.BestChild[0].Key)
	assert.Equal(t, "G", ss.BestChild[2].Key)
}

func TestReconstruct_NoFinitePredecessor(t *testing.T) {
	ss := searchcore.NewStateSpace[string, recCoord, string](searchcore.ModeAStar, 1, 1)
	env := &recEnv{}

	s := ss.GetOrCreate("S", recCoord{t: 0}, env)
	s.G = 0
	g := ss.GetOrCreate("G", recCoord{t: 1}, env)
	g.G = 1
	// G's only predecessor edge is infeasible: no path can be traced back.
	g.PredEdges = []searchcore.PredEdge[string]{{PredKey: "S", ActionID: 0, ActionCost: math.Inf(1)}}

	_, err := trajectory.Reconstruct[string, recCoord, string](ss, g, "S", env)

	assert.Error(t, err)
}
