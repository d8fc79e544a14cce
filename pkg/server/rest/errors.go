package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/yugo1103/motion-primitive-library/domain"
)

// ErrResponse is the teacher's router/navigation.go error envelope,
// ported unchanged: handlers never write http.Error themselves.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrInvalidRequest reports a malformed request body.
func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, StatusText: "Invalid request.", ErrorText: err.Error()}
}

// ErrValidation reports struct-validation failures, translated to
// English via go-playground/validator's translator, as the teacher does.
func ErrValidation(err error, errV []error) render.Renderer {
	vv := make([]string, 0, len(errV))
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, StatusText: "Invalid request.", ErrorText: err.Error(), ErrValidation: vv}
}

// ErrDomain maps a domain.Error's Code() to the matching HTTP status
// (spec.md §7's domain.Error -> HTTP mapping, extending the teacher's
// ErrChi to the search-specific sentinel errors added alongside it).
func ErrDomain(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: statusCodeFor(err), StatusText: statusTextFor(err), ErrorText: err.Error()}
}

func statusCodeFor(err error) int {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return http.StatusInternalServerError
	}
	switch derr.Code() {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrAlreadyAtGoal:
		return http.StatusBadRequest
	case domain.ErrExpansionBudgetExhausted, domain.ErrQueueExhausted, domain.ErrTraceBackFailure, domain.ErrInfeasibleEdge:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusTextFor(err error) string {
	switch statusCodeFor(err) {
	case http.StatusNotFound:
		return "Resource not found."
	case http.StatusBadRequest:
		return "Bad request."
	case http.StatusUnprocessableEntity:
		return "Search could not produce a trajectory."
	default:
		return "Internal server error."
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	for _, e := range verrs {
		errs = append(errs, fmt.Errorf(e.Translate(trans)))
	}
	return errs
}
