// Package service holds the planning demo server's business logic,
// gluing pkg/planner to the archive and renderer the REST handlers
// expose (spec.md §4.13, C15). It mirrors the teacher's
// pkg/server/rest/service/navigation.go layering: handlers never touch
// the planner or archive directly.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/yugo1103/motion-primitive-library/domain"
	"github.com/yugo1103/motion-primitive-library/pkg/archive"
	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
	"github.com/yugo1103/motion-primitive-library/pkg/planner"
	"github.com/yugo1103/motion-primitive-library/pkg/searchcore"
)

// Run is one completed plan/replan call's result, enough to answer both
// GET /api/runs/{id} and GET /api/runs/{id}.svg without re-searching.
type Run struct {
	ID         string
	Trajectory planner.Trajectory[gridenv.Key, gridenv.Coord, gridenv.ActionRecord]
	Occ        *gridenv.Occupancy
	StateSpace *searchcore.StateSpace[gridenv.Key, gridenv.Coord, gridenv.ActionRecord]
}

// PlanningService is the handlers' view of the planning backend.
type PlanningService interface {
	Plan(ctx context.Context, runID string, env *gridenv.GridEnvironment, startKey gridenv.Key, opt planner.Options) (Run, error)
	Replan(ctx context.Context, runID string, startKey gridenv.Key, opt planner.Options) (Run, error)
	GetRun(ctx context.Context, runID string) (Run, error)
}

// planningService is the concrete PlanningService: one Planner per
// runID (so concurrent callers don't share search state, per spec.md §5
// "each instance's search remains single-threaded"), backed by an
// optional Archive for cross-run persistence.
type planningService struct {
	mu       sync.Mutex
	runs     map[string]*runState
	archived *archive.Archive // nil when run without -archive
}

type runState struct {
	planner *planner.Planner[gridenv.Key, gridenv.Coord, gridenv.ActionRecord]
	env     *gridenv.GridEnvironment
	last    Run
}

// NewPlanningService builds a PlanningService that, when arc is non-nil,
// also writes each finished run to the Archive. GetRun and Replan answer
// only from runs held in memory by this process; archived runs are not
// read back.
func NewPlanningService(arc *archive.Archive) PlanningService {
	return &planningService{runs: make(map[string]*runState), archived: arc}
}

func (s *planningService) Plan(ctx context.Context, runID string, env *gridenv.GridEnvironment, startKey gridenv.Key, opt planner.Options) (Run, error) {
	s.mu.Lock()
	p := planner.New[gridenv.Key, gridenv.Coord, gridenv.ActionRecord](env, opt)
	rs := &runState{planner: p, env: env}
	s.runs[runID] = rs
	s.mu.Unlock()

	startCoord := env.CoordOf(startKey)
	traj, err := p.Plan(startCoord, startKey)
	if err != nil {
		return Run{}, err
	}
	return s.finish(runID, rs, traj)
}

func (s *planningService) Replan(ctx context.Context, runID string, startKey gridenv.Key, opt planner.Options) (Run, error) {
	s.mu.Lock()
	rs, ok := s.runs[runID]
	s.mu.Unlock()
	if !ok {
		return Run{}, domain.WrapErrorf(nil, domain.ErrNotFound, "service: unknown run id %q, call plan first", runID)
	}

	startCoord := rs.env.CoordOf(startKey)
	traj, err := rs.planner.Replan(startCoord, startKey)
	if err != nil {
		return Run{}, err
	}
	return s.finish(runID, rs, traj)
}

func (s *planningService) finish(runID string, rs *runState, traj planner.Trajectory[gridenv.Key, gridenv.Coord, gridenv.ActionRecord]) (Run, error) {
	run := Run{ID: runID, Trajectory: traj, Occ: rs.env.Occ, StateSpace: rs.planner.StateSpace()}

	s.mu.Lock()
	rs.last = run
	s.mu.Unlock()

	if s.archived != nil {
		rec := archive.Record{
			ScenarioID: runID,
			Primitives: traj.Primitives,
			Cost:       traj.Cost,
			Expansions: traj.Expansions,
		}
		if err := s.archived.Put(runID, rec); err != nil {
			return run, fmt.Errorf("service: archive run %s: %w", runID, err)
		}
	}
	return run, nil
}

func (s *planningService) GetRun(ctx context.Context, runID string) (Run, error) {
	s.mu.Lock()
	rs, ok := s.runs[runID]
	s.mu.Unlock()
	if !ok {
		return Run{}, domain.WrapErrorf(nil, domain.ErrNotFound, "service: unknown run id %q", runID)
	}
	return rs.last, nil
}
