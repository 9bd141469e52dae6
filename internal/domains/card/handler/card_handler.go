package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/shared"
	"commanders-backend/internal/shared/response"
)

type CardHandler struct {
	service card.CardService
}

func NewCardHandler(service card.CardService) *CardHandler {
	return &CardHandler{service: service}
}

// readImageUpload đọc optional multipart `image` field vào memory.
// Không có file → (nil, nil).
func readImageUpload(c *gin.Context) (*shared.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &shared.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// ListApproved godoc
// GET /api/cards - public gallery, approved cards newest first
func (h *CardHandler) ListApproved(c *gin.Context) {
	cards, err := h.service.ListApproved(c.Request.Context())
	if err != nil {
		response.Error(c, card.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, cards)
}

// ListAll godoc
// GET /api/cards/all - mọi card không filter status
func (h *CardHandler) ListAll(c *gin.Context) {
	cards, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, card.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, cards)
}

// GetByID godoc
// GET /api/cards/:id
func (h *CardHandler) GetByID(c *gin.Context) {
	found, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, card.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, found)
}

// Create godoc
// POST /api/admin/cards - multipart với optional image file
func (h *CardHandler) Create(c *gin.Context) {
	var req card.CreateCardReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	image, err := readImageUpload(c)
	if err != nil {
		response.BadRequest(c, "invalid image upload")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req, image)
	if err != nil {
		response.Error(c, card.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusCreated, created)
}

// Update godoc
// PUT /api/admin/cards/:id - partial multipart update
func (h *CardHandler) Update(c *gin.Context) {
	var req card.UpdateCardReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	image, err := readImageUpload(c)
	if err != nil {
		response.BadRequest(c, "invalid image upload")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		response.Error(c, card.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// DELETE /api/admin/cards/:id
func (h *CardHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, card.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "card deleted"})
}

// Export godoc
// GET /api/admin/cards/export - xlsx attachment
func (h *CardHandler) Export(c *gin.Context) {
	data, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		response.Error(c, card.GetHTTPStatusCode(err), err.Error())
		return
	}

	filename := fmt.Sprintf("commanders-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
