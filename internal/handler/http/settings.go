package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/payfolio/payslip-backend-go/internal/domain/settings"
	"github.com/payfolio/payslip-backend-go/internal/handler/http/response"
	settingsService "github.com/payfolio/payslip-backend-go/internal/service/settings"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settingsService.SettingsService
}

func NewSettingsHandler(settingsSvc settingsService.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsSvc}
}

// Get handles GET /settings
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	result, err := h.settingsService.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PATCH /settings
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	var updateReq settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.Update(r.Context(), userID, updateReq)
	if err != nil {
		slog.Error("Update settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", result)
}
