package dto

// CreateTermsRequest publishes a new terms-of-service document version.
type CreateTermsRequest struct {
	Tag     string `json:"tag" validate:"required,max=60"`
	Version string `json:"version" validate:"required,max=20"`
	Name    string `json:"name" validate:"required,max=120"`
	Content string `json:"content" validate:"required"`
}
