package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/service"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
	"github.com/maestre-ai/maestre-api/pkg/response"
)

// TermHandler handles terms document endpoints.
type TermHandler struct {
	service *service.TermService
}

// NewTermHandler constructs a terms handler.
func NewTermHandler(svc *service.TermService) *TermHandler {
	return &TermHandler{service: svc}
}

// Publish godoc
// @Summary Publish a new terms document version
// @Tags Terms
// @Accept json
// @Produce json
// @Param payload body dto.CreateTermsRequest true "Terms payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /terms [post]
func (h *TermHandler) Publish(c *gin.Context) {
	var req dto.CreateTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid terms payload"))
		return
	}

	doc, err := h.service.Publish(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, doc)
}

// Latest godoc
// @Summary Get the latest terms document for a tag
// @Tags Terms
// @Produce json
// @Param tag path string true "Terms tag"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /terms/{tag} [get]
func (h *TermHandler) Latest(c *gin.Context) {
	doc, err := h.service.Latest(c.Request.Context(), c.Param("tag"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, doc, nil)
}

// Versions godoc
// @Summary List all versions of a terms document
// @Tags Terms
// @Produce json
// @Param tag path string true "Terms tag"
// @Success 200 {object} response.Envelope
// @Router /terms/{tag}/versions [get]
func (h *TermHandler) Versions(c *gin.Context) {
	docs, err := h.service.Versions(c.Request.Context(), c.Param("tag"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, docs, nil)
}

// Delete godoc
// @Summary Delete a terms document version
// @Tags Terms
// @Produce json
// @Param id path string true "Terms document ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /terms/{id} [delete]
func (h *TermHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// PDF godoc
// @Summary Download a terms document version as PDF
// @Tags Terms
// @Produce application/pdf
// @Param tag path string true "Terms tag"
// @Param version path string true "Version"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /terms/{tag}/versions/{version}/pdf [get]
func (h *TermHandler) PDF(c *gin.Context) {
	data, filename, err := h.service.PDF(c.Request.Context(), c.Param("tag"), c.Param("version"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
