package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"commanders-backend/internal/domains/auth"
	"commanders-backend/internal/shared/response"
)

type AuthHandler struct {
	service auth.AuthService
}

func NewAuthHandler(service auth.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, auth.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
