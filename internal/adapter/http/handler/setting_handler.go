package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fintrellis/assetbook/internal/adapter/http/dto"
	"github.com/fintrellis/assetbook/internal/domain"
	"github.com/fintrellis/assetbook/internal/usecase"
)

// SettingService defines the behavior needed by SettingHandler.
type SettingService interface {
	GetSetting(ctx context.Context) (*domain.AssetSetting, error)
	UpsertSetting(ctx context.Context, input usecase.UpsertSettingInput) (*domain.AssetSetting, error)
}

// SettingHandler handles register setting HTTP requests.
type SettingHandler struct {
	settingUC SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settingUC SettingService) *SettingHandler {
	return &SettingHandler{settingUC: settingUC}
}

// Get retrieves the user's register setting.
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingUC.GetSetting(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get setting", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SettingFromDomain(setting))
}

// Upsert creates or replaces the user's register setting.
func (h *SettingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid setting", err.Error())
		return
	}

	setting, err := h.settingUC.UpsertSetting(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to save setting", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SettingFromDomain(setting))
}
