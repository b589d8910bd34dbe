// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/rondo/internal/domain/model"
)

// ValidateDependencies defines the interface for roster validation.
type ValidateDependencies interface {
	Validate(ctx context.Context, records []model.RawRecord) model.ValidationReport
}

// ValidateHandler handles validation requests.
type ValidateHandler struct {
	deps ValidateDependencies
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(deps ValidateDependencies) *ValidateHandler {
	return &ValidateHandler{deps: deps}
}

// HandleValidate handles POST /api/validate requests.
//
// Validation always answers 200 with the report; only an unreadable
// body is a 400. An empty roster is a valid roster with warnings.
func (h *ValidateHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ValidationReport{
			Valid:    false,
			Errors:   []string{"No data provided"},
			Warnings: []string{},
		})
		return
	}
	report := h.deps.Validate(r.Context(), req.Players)
	writeJSON(w, http.StatusOK, report)
}
