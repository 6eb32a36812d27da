package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fintrellis/assetbook/internal/adapter/http/dto"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// LifecycleService defines the behavior needed by LifecycleHandler.
type LifecycleService interface {
	Register(ctx context.Context, assetIDs []string) (*usecase.BatchResult, error)
	Draft(ctx context.Context, assetIDs []string) (*usecase.BatchResult, error)
}

// LifecycleHandler handles asset lifecycle transitions.
type LifecycleHandler struct {
	lifecycleUC LifecycleService
}

// NewLifecycleHandler creates a new LifecycleHandler.
func NewLifecycleHandler(lifecycleUC LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{lifecycleUC: lifecycleUC}
}

// Register moves a batch of draft assets into the registered state.
func (h *LifecycleHandler) Register(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.decodeIDs(w, r)
	if !ok {
		return
	}

	result, err := h.lifecycleUC.Register(r.Context(), ids)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to register assets", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BatchResultFromUseCase(result))
}

// Draft moves a batch of registered assets back to draft, discarding
// their depreciation history.
func (h *LifecycleHandler) Draft(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.decodeIDs(w, r)
	if !ok {
		return
	}

	result, err := h.lifecycleUC.Draft(r.Context(), ids)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to draft assets", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BatchResultFromUseCase(result))
}

func (h *LifecycleHandler) decodeIDs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req dto.AssetIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset list", err.Error())
		return nil, false
	}

	return req.AssetIDs, true
}
