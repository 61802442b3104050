package handler

import (
	"net/http"

	"medicore/internal/delivery/dto"
	"medicore/internal/usecase"
	"medicore/pkg/validator"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
	validator       *validator.CustomValidator
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase, validator *validator.CustomValidator) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
		validator:       validator,
	}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.Get(r.Context())
	respond(w, http.StatusOK, "Settings retrieved successfully", settings, err, "Failed to get settings")
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	settings, err := h.settingsUsecase.Update(r.Context(), &req)
	respond(w, http.StatusOK, "Settings updated successfully", settings, err, "Failed to update settings")
}
