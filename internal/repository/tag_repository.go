package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/maestre-ai/maestre-api/internal/models"
)

// TagRepository handles tag persistence and material associations.
type TagRepository struct {
	db *sqlx.DB
}

// NewTagRepository constructs the repository.
func NewTagRepository(db *sqlx.DB) *TagRepository {
	return &TagRepository{db: db}
}

const tagColumns = `id, name, color, creator_id, created_at`

// Create inserts a new tag.
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO tags (id, name, color, creator_id, created_at)
	VALUES (:id, :name, :color, :creator_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tag); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// GetByID retrieves one tag row.
func (r *TagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM tags WHERE id = $1 LIMIT 1`, tagColumns)
	var tag models.Tag
	if err := r.db.GetContext(ctx, &tag, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &tag, nil
}

// FindByName returns a creator's tag by exact name.
func (r *TagRepository) FindByName(ctx context.Context, creatorID, name string) (*models.Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM tags WHERE creator_id = $1 AND name = $2 LIMIT 1`, tagColumns)
	var tag models.Tag
	if err := r.db.GetContext(ctx, &tag, query, creatorID, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find tag by name: %w", err)
	}
	return &tag, nil
}

// ListByCreator returns all tags owned by a user.
func (r *TagRepository) ListByCreator(ctx context.Context, creatorID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM tags WHERE creator_id = $1 ORDER BY name ASC`, tagColumns)
	var tags []models.Tag
	if err := r.db.SelectContext(ctx, &tags, query, creatorID); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// ListByMaterial returns all tags attached to a material.
func (r *TagRepository) ListByMaterial(ctx context.Context, materialID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`SELECT t.%s FROM tags t JOIN material_tags mt ON mt.tag_id = t.id WHERE mt.material_id = $1 ORDER BY t.name ASC`,
		strings.ReplaceAll(tagColumns, ", ", ", t."))
	var tags []models.Tag
	if err := r.db.SelectContext(ctx, &tags, query, materialID); err != nil {
		return nil, fmt.Errorf("list material tags: %w", err)
	}
	return tags, nil
}

// Update updates mutable fields of a tag.
func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	const query = `UPDATE tags SET name = :name, color = :color WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, tag)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check tag update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a tag and its material associations.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tag delete: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM material_tags WHERE tag_id = $1`, id); err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check tag delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

// Attach links a tag to a material, ignoring duplicates.
func (r *TagRepository) Attach(ctx context.Context, materialID, tagID string) error {
	const query = `INSERT INTO material_tags (material_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, materialID, tagID); err != nil {
		return fmt.Errorf("attach tag: %w", err)
	}
	return nil
}

// Detach unlinks a tag from a material.
func (r *TagRepository) Detach(ctx context.Context, materialID, tagID string) error {
	const query = `DELETE FROM material_tags WHERE material_id = $1 AND tag_id = $2`
	if _, err := r.db.ExecContext(ctx, query, materialID, tagID); err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}
	return nil
}

// ReplaceForMaterial swaps the full tag set of a material inside one transaction.
func (r *TagRepository) ReplaceForMaterial(ctx context.Context, materialID string, tagIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tag replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM material_tags WHERE material_id = $1`, materialID); err != nil {
		return fmt.Errorf("clear material tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO material_tags (material_id, tag_id) VALUES ($1, $2)`, materialID, tagID); err != nil {
			return fmt.Errorf("attach material tag: %w", err)
		}
	}
	return tx.Commit()
}
