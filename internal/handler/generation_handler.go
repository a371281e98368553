package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/service"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
	"github.com/maestre-ai/maestre-api/pkg/response"
)

// GenerationHandler handles the AI tooling endpoints.
type GenerationHandler struct {
	generation *service.GenerationService
	artifacts  *service.ArtifactService
	translator *service.TranslatorService
}

// NewGenerationHandler constructs a generation handler.
func NewGenerationHandler(generation *service.GenerationService, artifacts *service.ArtifactService, translator *service.TranslatorService) *GenerationHandler {
	return &GenerationHandler{generation: generation, artifacts: artifacts, translator: translator}
}

// GenerateExam godoc
// @Summary Generate an exam
// @Tags Tools
// @Accept json
// @Produce json
// @Param payload body dto.GenerateExamRequest true "Exam parameters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /tools/exams [post]
func (h *GenerationHandler) GenerateExam(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.GenerateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid exam payload"))
		return
	}

	artifact, err := h.generation.GenerateExam(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, artifact, nil)
}

// GeneratePlan godoc
// @Summary Generate a lesson plan
// @Tags Tools
// @Accept json
// @Produce json
// @Param payload body dto.GeneratePlanRequest true "Plan parameters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /tools/lesson-plans [post]
func (h *GenerationHandler) GeneratePlan(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid plan payload"))
		return
	}

	artifact, err := h.generation.GeneratePlan(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, artifact, nil)
}

// ExportArtifact godoc
// @Summary Export generated content as a downloadable document
// @Tags Tools
// @Accept json
// @Produce json
// @Param payload body dto.ExportArtifactRequest true "Export payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tools/artifacts/export [post]
func (h *GenerationHandler) ExportArtifact(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ExportArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	res, err := h.artifacts.Export(c.Request.Context(), claims.UserID, requestLanguage(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// SaveArtifact godoc
// @Summary Save generated content as a classroom material
// @Tags Tools
// @Accept json
// @Produce json
// @Param payload body dto.SaveArtifactRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tools/artifacts/save [post]
func (h *GenerationHandler) SaveArtifact(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SaveArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}

	material, err := h.artifacts.SaveToClassroom(c.Request.Context(), claims.UserID, requestLanguage(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, material)
}

// DownloadArtifact godoc
// @Summary Download an exported artifact by signed token
// @Tags Tools
// @Produce application/octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /tools/artifacts/{token} [get]
func (h *GenerationHandler) DownloadArtifact(c *gin.Context) {
	data, filename, err := h.artifacts.Download(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "application/pdf"
	if strings.HasSuffix(filename, ".html") {
		contentType = "text/html; charset=utf-8"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Translate godoc
// @Summary Translate text
// @Tags Tools
// @Accept json
// @Produce json
// @Param payload body dto.TranslateRequest true "Translation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tools/translate [post]
func (h *GenerationHandler) Translate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid translation payload"))
		return
	}

	res, err := h.translator.Translate(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// TranslationHistory godoc
// @Summary List recent translations for the current user
// @Tags Tools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tools/translate/history [get]
func (h *GenerationHandler) TranslationHistory(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entries, err := h.translator.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries, nil)
}

// requestLanguage picks the response language from the lang query parameter
// or the Accept-Language header, defaulting to English.
func requestLanguage(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return "en"
	}
	primary := strings.TrimSpace(strings.Split(header, ",")[0])
	if idx := strings.IndexAny(primary, "-;"); idx > 0 {
		primary = primary[:idx]
	}
	if primary == "" {
		return "en"
	}
	return strings.ToLower(primary)
}
