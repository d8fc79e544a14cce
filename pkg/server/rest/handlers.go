// Package rest exposes the planner façade over HTTP: single-shot plan,
// incremental replan, and run inspection, instrumented with Prometheus
// metrics (spec.md §4.13, C15). Layout and error-handling conventions
// follow the teacher's pkg/server/rest/handlers.go and
// router/navigation.go.
package rest

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
	"github.com/yugo1103/motion-primitive-library/pkg/planner"
	svgrender "github.com/yugo1103/motion-primitive-library/pkg/render"
	"github.com/yugo1103/motion-primitive-library/pkg/server/rest/service"
)

// EnvironmentProvider resolves a request's map reference to a concrete
// GridEnvironment. The demo server keeps a single preloaded environment
// per process; a fuller deployment would key this off a map id.
type EnvironmentProvider func() *gridenv.GridEnvironment

// PlannerHandler serves the plan/replan/runs endpoints.
type PlannerHandler struct {
	svc     service.PlanningService
	envs    EnvironmentProvider
	metrics *Metrics
}

// PlannerRouter mounts the planning endpoints onto r (spec.md §4.13).
func PlannerRouter(r *chi.Mux, svc service.PlanningService, envs EnvironmentProvider, m *Metrics) {
	h := &PlannerHandler{svc: svc, envs: envs, metrics: m}

	r.Route("/api", func(r chi.Router) {
		r.Post("/plan", h.plan)
		r.Post("/replan", h.replan)
		r.Get("/runs/{id}", h.getRun)
		r.Get("/runs/{id}.svg", h.getRunSVG)
	})
}

// PoseRequest is a pose (x, y, yaw bucket) in the request body.
type PoseRequest struct {
	X   float64 `json:"x" validate:"required"`
	Y   float64 `json:"y" validate:"required"`
	Yaw int     `json:"yaw"`
}

// PlanRequest is POST /api/plan's body.
//
//	@Description	request body for a single-shot weighted A* plan query
type PlanRequest struct {
	RunID      string  `json:"run_id" validate:"required"`
	Start      PoseRequest `json:"start"`
	Eps        float64 `json:"eps" validate:"required,gte=0"`
	Dt         float64 `json:"dt" validate:"required,gt=0"`
	MaxExpand  int     `json:"max_expand"`
	MaxT       float64 `json:"max_t"`
}

func (p *PlanRequest) Bind(r *http.Request) error {
	if p.RunID == "" {
		return errors.New("run_id is required")
	}
	return nil
}

// ReplanRequest is POST /api/replan's body: only the run to continue and
// the (possibly moved) start pose — the environment and eps/dt are
// already fixed from the Plan call that created the run.
type ReplanRequest struct {
	RunID string      `json:"run_id" validate:"required"`
	Start PoseRequest `json:"start"`
}

func (p *ReplanRequest) Bind(r *http.Request) error {
	if p.RunID == "" {
		return errors.New("run_id is required")
	}
	return nil
}

// RunResponse summarizes a completed plan/replan call.
type RunResponse struct {
	RunID      string `json:"run_id"`
	Cost       float64 `json:"cost"`
	Expansions int     `json:"expansions"`
	Steps      int     `json:"steps"`
}

func NewRunResponse(run service.Run) *RunResponse {
	return &RunResponse{
		RunID:      run.ID,
		Cost:       run.Trajectory.Cost,
		Expansions: run.Trajectory.Expansions,
		Steps:      len(run.Trajectory.Primitives),
	}
}

func startKeyOf(p PoseRequest, env *gridenv.GridEnvironment) gridenv.Key {
	return gridenv.Key{
		X:   int(p.X / env.CellSize),
		Y:   int(p.Y / env.CellSize),
		Yaw: ((p.Yaw % gridenv.NumYawBuckets) + gridenv.NumYawBuckets) % gridenv.NumYawBuckets,
	}
}

func validateRequest(w http.ResponseWriter, r *http.Request, data render.Binder) bool {
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return false
	}
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

//	@Summary		single-shot weighted A* plan
//	@Tags			planning
//	@Param			body	body	PlanRequest	true	"plan request"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/plan [post]
//	@Success		200	{object}	RunResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
func (h *PlannerHandler) plan(w http.ResponseWriter, r *http.Request) {
	data := &PlanRequest{}
	if !validateRequest(w, r, data) {
		return
	}

	env := h.envs()
	startKey := startKeyOf(data.Start, env)
	opt := planner.Options{Eps: data.Eps, Dt: data.Dt, MaxExpand: data.MaxExpand, MaxT: data.MaxT}

	h.metrics.PlanCount.WithLabelValues("astar").Inc()
	run, err := h.svc.Plan(r.Context(), data.RunID, env, startKey, opt)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewRunResponse(run))
}

//	@Summary		incremental LPA* replan of an existing run
//	@Tags			planning
//	@Param			body	body	ReplanRequest	true	"replan request"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/replan [post]
//	@Success		200	{object}	RunResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
func (h *PlannerHandler) replan(w http.ResponseWriter, r *http.Request) {
	data := &ReplanRequest{}
	if !validateRequest(w, r, data) {
		return
	}

	env := h.envs()
	startKey := startKeyOf(data.Start, env)

	h.metrics.PlanCount.WithLabelValues("lpastar").Inc()
	run, err := h.svc.Replan(r.Context(), data.RunID, startKey, planner.Options{})
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewRunResponse(run))
}

//	@Summary		fetch a previously completed run's summary
//	@Tags			planning
//	@Router			/runs/{id} [get]
//	@Success		200	{object}	RunResponse
//	@Failure		404	{object}	ErrResponse
func (h *PlannerHandler) getRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := h.svc.GetRun(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewRunResponse(run))
}

//	@Summary		render a previously completed run's search as SVG
//	@Tags			planning
//	@Router			/runs/{id}.svg [get]
//	@Produce		image/svg+xml
//	@Success		200
//	@Failure		404	{object}	ErrResponse
func (h *PlannerHandler) getRunSVG(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := h.svc.GetRun(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}

	var buf bytes.Buffer
	if err := svgrender.RenderSearch(&buf, run.Occ, run.StateSpace, run.Trajectory.Primitives); err != nil {
		render.Render(w, r, ErrDomain(err))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
