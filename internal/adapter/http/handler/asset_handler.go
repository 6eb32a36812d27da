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

// AssetService defines the behavior needed by AssetHandler.
type AssetService interface {
	CreateAsset(ctx context.Context, input usecase.CreateAssetInput) (*domain.Asset, error)
	GetAsset(ctx context.Context, id string) (*domain.Asset, error)
	ListAssets(ctx context.Context, filter usecase.AssetFilter) ([]*domain.Asset, error)
	DeleteAssets(ctx context.Context, ids []string) error
	StatusCounts(ctx context.Context) (map[domain.AssetStatus]int, error)
}

// AssetHandler handles asset registry HTTP requests.
type AssetHandler struct {
	assetUC AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetUC AssetService) *AssetHandler {
	return &AssetHandler{assetUC: assetUC}
}

// Create creates a new asset, optionally registering it in the same call.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset", err.Error())
		return
	}

	asset, err := h.assetUC.CreateAsset(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create asset", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.AssetFromDomain(asset))
}

// Get retrieves an asset by ID.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing asset ID", "")
		return
	}

	asset, err := h.assetUC.GetAsset(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get asset", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// List lists the user's assets with optional status, search and
// pagination query parameters.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.AssetFilter{
		Status:  domain.AssetStatus(r.URL.Query().Get("status")),
		Search:  r.URL.Query().Get("search"),
		OrderBy: r.URL.Query().Get("order_by"),
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	}

	assets, err := h.assetUC.ListAssets(r.Context(), filter)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list assets", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AssetsFromDomain(assets))
}

// Delete removes a batch of assets.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req dto.AssetIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset list", err.Error())
		return
	}

	if err := h.assetUC.DeleteAssets(r.Context(), req.AssetIDs); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete assets", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Counts reports how many assets sit in each lifecycle state.
func (h *AssetHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.assetUC.StatusCounts(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to count assets", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, counts)
}
