package models

import "time"

// TermsDocument is a versioned legal document (terms of service, privacy).
type TermsDocument struct {
	ID        string    `db:"id" json:"id"`
	Tag       string    `db:"tag" json:"tag"`
	Version   string    `db:"version" json:"version"`
	Name      string    `db:"name" json:"name"`
	Content   string    `db:"content" json:"content"`
	PDFPath   string    `db:"pdf_path" json:"pdf_content,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
