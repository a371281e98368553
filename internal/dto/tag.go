package dto

// CreateTagRequest describes payload for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=60"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateTagRequest holds optional tag mutations.
type UpdateTagRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=60"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}
