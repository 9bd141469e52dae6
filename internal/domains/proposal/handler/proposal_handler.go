package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"commanders-backend/internal/domains/proposal"
	"commanders-backend/internal/shared"
	"commanders-backend/internal/shared/response"
)

type ProposalHandler struct {
	service proposal.ProposalService
}

func NewProposalHandler(service proposal.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

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

// ListPublic godoc
// GET /api/proposals - chỉ pending proposals
func (h *ProposalHandler) ListPublic(c *gin.Context) {
	proposals, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, proposals)
}

// GetByID godoc
// GET /api/proposals/:id
func (h *ProposalHandler) GetByID(c *gin.Context) {
	found, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, found)
}

// Create godoc
// POST /api/proposals - public submission, multipart với optional image
func (h *ProposalHandler) Create(c *gin.Context) {
	var req proposal.CreateProposalReq
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
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusCreated, created)
}

// ListAll godoc
// GET /api/admin/proposals - admin view, mọi status
func (h *ProposalHandler) ListAll(c *gin.Context) {
	proposals, err := h.service.ListAllAdmin(c.Request.Context())
	if err != nil {
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, proposals)
}

// Update godoc
// PUT /api/admin/proposals/:id - pending-only partial update
func (h *ProposalHandler) Update(c *gin.Context) {
	var req proposal.UpdateProposalReq
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
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Approve godoc
// POST /api/admin/proposals/:id/approve - trả về Card vừa derive
func (h *ProposalHandler) Approve(c *gin.Context) {
	created, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusCreated, created)
}

// Reject godoc
// POST /api/admin/proposals/:id/reject - confirmation, không trả entity
func (h *ProposalHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "proposal rejected"})
}

// Delete godoc
// DELETE /api/admin/proposals/:id - chỉ xóa được khi đã resolve
func (h *ProposalHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, proposal.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "proposal deleted"})
}
