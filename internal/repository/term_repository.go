package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/maestre-ai/maestre-api/internal/models"
)

// TermRepository handles versioned terms-of-service documents.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository constructs the repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

const termColumns = `id, tag, version, name, content, pdf_path, created_at`

// Create publishes a new document version.
func (r *TermRepository) Create(ctx context.Context, doc *models.TermsDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO terms_documents (id, tag, version, name, content, pdf_path, created_at)
	VALUES (:id, :tag, :version, :name, :content, :pdf_path, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create terms document: %w", err)
	}
	return nil
}

// LatestByTag returns the newest version for a tag.
func (r *TermRepository) LatestByTag(ctx context.Context, tag string) (*models.TermsDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM terms_documents WHERE tag = $1 ORDER BY created_at DESC LIMIT 1`, termColumns)
	var doc models.TermsDocument
	if err := r.db.GetContext(ctx, &doc, query, tag); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("latest terms document: %w", err)
	}
	return &doc, nil
}

// GetByTagVersion returns one specific version.
func (r *TermRepository) GetByTagVersion(ctx context.Context, tag, version string) (*models.TermsDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM terms_documents WHERE tag = $1 AND version = $2 LIMIT 1`, termColumns)
	var doc models.TermsDocument
	if err := r.db.GetContext(ctx, &doc, query, tag, version); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get terms document: %w", err)
	}
	return &doc, nil
}

// ListVersions returns all versions of a tag, newest first.
func (r *TermRepository) ListVersions(ctx context.Context, tag string) ([]models.TermsDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM terms_documents WHERE tag = $1 ORDER BY created_at DESC`, termColumns)
	var docs []models.TermsDocument
	if err := r.db.SelectContext(ctx, &docs, query, tag); err != nil {
		return nil, fmt.Errorf("list terms versions: %w", err)
	}
	return docs, nil
}

// UpdatePDFPath records where the rendered PDF was stored.
func (r *TermRepository) UpdatePDFPath(ctx context.Context, id, pdfPath string) error {
	const query = `UPDATE terms_documents SET pdf_path = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, pdfPath); err != nil {
		return fmt.Errorf("update terms pdf path: %w", err)
	}
	return nil
}

// Delete removes a terms document by id.
func (r *TermRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM terms_documents WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete terms document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete terms document: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
