package models

import "time"

// Material is a stored teaching document attached to a classroom.
type Material struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	FilePath    string    `db:"file_path" json:"file"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	ClassroomID string    `db:"classroom_id" json:"classroom"`
	UploadedBy  string    `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	Tags []Tag `db:"-" json:"tags,omitempty"`
}

// MaterialFilter captures filtering criteria for listing materials.
type MaterialFilter struct {
	ClassroomID string
	TagNames    []string
	UploadedBy  string
}

// Tag labels materials for retrieval; unique per (name, creator).
type Tag struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Color     string    `db:"color" json:"color"`
	CreatorID string    `db:"creator_id" json:"creator_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
