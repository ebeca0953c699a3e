package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/settings"
)

// SettingHandler serves the admin flags: realtime_enabled and
// public_boards_enabled.
type SettingHandler struct {
	settingsService settings.Service
}

func NewSettingHandler(settingsService settings.Service) *SettingHandler {
	return &SettingHandler{
		settingsService: settingsService,
	}
}

// GetSetting godoc
// @Summary      Read a global setting
// @Description  Returns the current value of a global flag
// @Tags         settings
// @Produce      json
// @Param        key path string true "Setting key" Enums(realtime_enabled, public_boards_enabled)
// @Success      200 {object} response.SuccessResponse{data=dto.SettingResponse} "Setting"
// @Failure      404 {object} response.ErrorResponse "Unknown setting key"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /admin/settings/{key} [get]
func (h *SettingHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsService.Get(c, c.Param("key"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, setting)
}

// UpdateSetting godoc
// @Summary      Update a global setting
// @Description  Flips a global flag. Turning realtime_enabled off refuses new websocket connections; existing ones drain on their own.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        key path string true "Setting key" Enums(realtime_enabled, public_boards_enabled)
// @Param        request body dto.UpdateSettingRequest true "New value"
// @Success      200 {object} response.SuccessResponse{data=dto.SettingResponse} "Setting updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      404 {object} response.ErrorResponse "Unknown setting key"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /admin/settings/{key} [put]
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	setting, err := h.settingsService.Update(c, c.Param("key"), *req.Enabled)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, setting)
}
