package dto

import "github.com/maestre-ai/maestre-api/internal/models"

// UploadMaterialRequest carries the multipart form fields accompanying a file upload.
type UploadMaterialRequest struct {
	Name        string `form:"name" json:"name" validate:"required,max=120"`
	ClassroomID string `form:"classroom" json:"classroom" validate:"required,uuid4"`
	Tags        string `form:"tags" json:"tags"`
}

// UpdateMaterialRequest holds optional metadata mutations.
type UpdateMaterialRequest struct {
	Name *string  `json:"name" validate:"omitempty,max=120"`
	Tags []string `json:"tags"`
}

// MaterialFilterRequest captures list query parameters.
type MaterialFilterRequest struct {
	ClassroomID string `form:"classroom"`
	Tags        string `form:"tags"`
}

// ExtractTextFromURLRequest points the extractor at an already stored document.
type ExtractTextFromURLRequest struct {
	FileURL    string `json:"file_url" validate:"required,url"`
	MaterialID string `json:"material_id"`
}

// ExtractTextResponse returns the plain text pulled out of a document.
type ExtractTextResponse struct {
	Text       string `json:"text"`
	CharCount  int    `json:"char_count"`
	SourceName string `json:"source_name"`
}

// MaterialResponse enriches a material with its resolved tags.
type MaterialResponse struct {
	models.Material
	DownloadURL string `json:"download_url,omitempty"`
}
