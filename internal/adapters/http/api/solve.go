// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/rondo/internal/app"
	"github.com/okian/rondo/internal/domain/model"
)

// SolveDependencies defines the interface for balancing operations.
type SolveDependencies interface {
	Solve(ctx context.Context, records []model.PlayerRecord, opts service.SolveOptions) (model.SolveResult, error)
}

// SolveHandler handles balancing requests.
type SolveHandler struct {
	deps SolveDependencies
}

// NewSolveHandler creates a new solve handler.
func NewSolveHandler(deps SolveDependencies) *SolveHandler {
	return &SolveHandler{deps: deps}
}

// HandleSolve handles POST /api/solve requests.
//
// Rosters the solver rejects come back as 422 with the unsuccessful
// result in the body; capacity and deadline problems map to 503.
func (h *SolveHandler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "No data provided")
		return
	}
	if len(req.Players) == 0 {
		writeFailure(w, http.StatusBadRequest, "No players provided")
		return
	}

	res, err := h.deps.Solve(r.Context(), req.Players, service.SolveOptions{
		Seed:      req.Options.Seed,
		TimeoutMS: req.Options.TimeoutMS,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBusy),
			errors.Is(err, service.ErrTimeout),
			errors.Is(err, service.ErrNotStarted):
			writeFailure(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeFailure(w, http.StatusInternalServerError, fmt.Sprintf("Server error: %s", err))
		}
		return
	}
	if !res.Success {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
