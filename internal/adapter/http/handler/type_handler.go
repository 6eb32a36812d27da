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

// TypeService defines the behavior needed by TypeHandler.
type TypeService interface {
	CreateType(ctx context.Context, input usecase.TypeInput) (*domain.AssetType, error)
	GetType(ctx context.Context, id string) (*domain.AssetType, error)
	ListTypes(ctx context.Context, limit, offset int) ([]*domain.AssetType, error)
	UpdateType(ctx context.Context, id string, input usecase.TypeInput) (*domain.AssetType, error)
}

// TypeHandler handles asset type HTTP requests.
type TypeHandler struct {
	typeUC TypeService
}

// NewTypeHandler creates a new TypeHandler.
func NewTypeHandler(typeUC TypeService) *TypeHandler {
	return &TypeHandler{typeUC: typeUC}
}

// Create creates a new asset type.
func (h *TypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset type", err.Error())
		return
	}

	assetType, err := h.typeUC.CreateType(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create asset type", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TypeFromDomain(assetType))
}

// Get retrieves an asset type by ID.
func (h *TypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing type ID", "")
		return
	}

	assetType, err := h.typeUC.GetType(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get asset type", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TypeFromDomain(assetType))
}

// List lists the user's asset types.
func (h *TypeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	types, err := h.typeUC.ListTypes(r.Context(), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list asset types", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TypesFromDomain(types))
}

// Update replaces an asset type's configuration.
func (h *TypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing type ID", "")
		return
	}

	var req dto.TypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset type", err.Error())
		return
	}

	assetType, err := h.typeUC.UpdateType(r.Context(), id, input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update asset type", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TypeFromDomain(assetType))
}
