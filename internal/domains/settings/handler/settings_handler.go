package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"commanders-backend/internal/domains/settings"
	"commanders-backend/internal/shared/response"
)

type SettingsHandler struct {
	service settings.SettingsService
}

func NewSettingsHandler(service settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get godoc
// GET /api/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, settings.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, found)
}

// Update godoc
// PUT /api/admin/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settings.UpdateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, settings.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, updated)
}
