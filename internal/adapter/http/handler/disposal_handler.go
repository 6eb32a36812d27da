package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintrellis/assetbook/internal/adapter/http/dto"
	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// DisposalService defines the behavior needed by DisposalHandler.
type DisposalService interface {
	Preview(ctx context.Context, input usecase.PreviewInput) (*domain.DisposalJournal, error)
	Dispose(ctx context.Context, input usecase.DisposeInput) (*domain.DisposalRecord, error)
	GetDisposal(ctx context.Context, assetID string) (*domain.DisposalRecord, error)
}

// UndisposeService reverses recorded disposals.
type UndisposeService interface {
	Undispose(ctx context.Context, assetID string) (*domain.Asset, error)
}

// DisposalHandler handles asset disposal HTTP requests.
type DisposalHandler struct {
	disposalUC  DisposalService
	lifecycleUC UndisposeService
}

// NewDisposalHandler creates a new DisposalHandler.
func NewDisposalHandler(disposalUC DisposalService, lifecycleUC UndisposeService) *DisposalHandler {
	return &DisposalHandler{disposalUC: disposalUC, lifecycleUC: lifecycleUC}
}

// Preview computes the disposal journal without recording anything.
func (h *DisposalHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewDisposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid disposal preview", err.Error())
		return
	}

	journal, err := h.disposalUC.Preview(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to preview disposal", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(journal))
}

// Dispose records a disposal and moves the asset to the disposed state.
func (h *DisposalHandler) Dispose(w http.ResponseWriter, r *http.Request) {
	var req dto.DisposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid disposal", err.Error())
		return
	}

	record, err := h.disposalUC.Dispose(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to dispose asset", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DisposalFromDomain(record))
}

// Get retrieves the recorded disposal for an asset.
func (h *DisposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing asset ID", "")
		return
	}

	record, err := h.disposalUC.GetDisposal(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get disposal", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DisposalFromDomain(record))
}

// Undispose reverses a disposal, returning the asset to the registered
// state and deleting the disposal record.
func (h *DisposalHandler) Undispose(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing asset ID", "")
		return
	}

	asset, err := h.lifecycleUC.Undispose(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to undispose asset", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}
