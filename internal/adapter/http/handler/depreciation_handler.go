package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrellis/assetbook/internal/adapter/http/dto"
	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// DepreciationService defines the behavior needed by DepreciationHandler.
type DepreciationService interface {
	Run(ctx context.Context, toDate time.Time) (*usecase.BatchResult, error)
	Rollback(ctx context.Context, cutoff time.Time) (int, error)
	Entries(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error)
}

// DepreciationHandler handles depreciation run HTTP requests.
type DepreciationHandler struct {
	depreciationUC DepreciationService
}

// NewDepreciationHandler creates a new DepreciationHandler.
func NewDepreciationHandler(depreciationUC DepreciationService) *DepreciationHandler {
	return &DepreciationHandler{depreciationUC: depreciationUC}
}

// Run posts depreciation for all registered assets up to the given date.
func (h *DepreciationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.RunDepreciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	toDate, err := req.ParseToDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run date", err.Error())
		return
	}

	result, err := h.depreciationUC.Run(r.Context(), toDate)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to run depreciation", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BatchResultFromUseCase(result))
}

// Rollback reverses depreciation entries dated after the cutoff.
func (h *DepreciationHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	var req dto.RollbackDepreciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cutoff, err := req.ParseCutoff()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cutoff date", err.Error())
		return
	}

	reversed, err := h.depreciationUC.Rollback(r.Context(), cutoff)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to roll back depreciation", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.RollbackResponse{Reversed: reversed})
}

// Entries lists an asset's depreciation history oldest first.
func (h *DepreciationHandler) Entries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing asset ID", "")
		return
	}

	entries, err := h.depreciationUC.Entries(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list entries", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
