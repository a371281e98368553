package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	"github.com/maestre-ai/maestre-api/internal/service"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
	"github.com/maestre-ai/maestre-api/pkg/response"
)

// MaterialHandler handles material upload and extraction endpoints.
type MaterialHandler struct {
	materials  *service.MaterialService
	extraction *service.ExtractionService
}

// NewMaterialHandler constructs a material handler.
func NewMaterialHandler(materials *service.MaterialService, extraction *service.ExtractionService) *MaterialHandler {
	return &MaterialHandler{materials: materials, extraction: extraction}
}

// Upload godoc
// @Summary Upload a material to a classroom
// @Tags Materials
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Material name"
// @Param classroom formData string true "Classroom ID"
// @Param tags formData string false "Comma separated tag names"
// @Param file formData file true "PDF or DOCX file"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /materials [post]
func (h *MaterialHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UploadMaterialRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	data, err := readMultipartFile(fileHeader)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}

	material, err := h.materials.Upload(c.Request.Context(), claims.UserID, req, fileHeader.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, material)
}

// List godoc
// @Summary List materials
// @Tags Materials
// @Produce json
// @Param classroom query string false "Classroom ID filter"
// @Param tags query string false "Comma separated tag names"
// @Success 200 {object} response.Envelope
// @Router /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.MaterialFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid filter"))
		return
	}

	materials, err := h.materials.List(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, materials, nil)
}

// Get godoc
// @Summary Get a material by id
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /materials/{id} [get]
func (h *MaterialHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	material, err := h.materials.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.MaterialResponse{
		Material:    *material,
		DownloadURL: "/api/v1/materials/" + material.ID + "/download",
	}, nil)
}

// Download godoc
// @Summary Download the stored file of a material
// @Tags Materials
// @Produce application/octet-stream
// @Param id path string true "Material ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /materials/{id}/download [get]
func (h *MaterialHandler) Download(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	material, data, err := h.materials.Content(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+material.Name+`"`)
	c.Data(http.StatusOK, material.MimeType, data)
}

// Update godoc
// @Summary Rename a material or replace its tags
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param payload body dto.UpdateMaterialRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
		return
	}

	material, err := h.materials.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, material, nil)
}

// Delete godoc
// @Summary Delete a material
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.materials.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ExtractText godoc
// @Summary Extract plain text from an uploaded document
// @Tags Materials
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "DOCX file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /materials/extract-text [post]
func (h *MaterialHandler) ExtractText(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	data, err := readMultipartFile(fileHeader)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}

	doc, err := h.extraction.ExtractFromUpload(fileHeader.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.ExtractTextResponse{
		Text:       doc.ExtractedText,
		CharCount:  len(doc.ExtractedText),
		SourceName: doc.SourceName,
	}, nil)
}

// ExtractTextFromURL godoc
// @Summary Extract plain text from a document at a URL
// @Tags Materials
// @Accept json
// @Produce json
// @Param payload body dto.ExtractTextFromURLRequest true "Source URL"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /materials/extract-text-from-url [post]
func (h *MaterialHandler) ExtractTextFromURL(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ExtractTextFromURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid extraction payload"))
		return
	}

	// A stored material reference wins over the raw URL.
	var ref *models.ReferenceDocument
	var err error
	if req.MaterialID != "" {
		ref, err = h.extraction.ExtractFromMaterial(c.Request.Context(), claims.UserID, req.MaterialID)
	} else {
		ref, err = h.extraction.ExtractFromURL(c.Request.Context(), req.FileURL)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.ExtractTextResponse{
		Text:       ref.ExtractedText,
		CharCount:  len(ref.ExtractedText),
		SourceName: ref.SourceName,
	}, nil)
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
