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

// MaterialRepository handles material metadata persistence.
type MaterialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository constructs the repository.
func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

const materialColumns = `id, name, file_path, mime_type, size_bytes, classroom_id, uploaded_by, created_at, updated_at`

// Create stores metadata for an uploaded material.
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if material.CreatedAt.IsZero() {
		material.CreatedAt = now
	}
	material.UpdatedAt = now

	const query = `INSERT INTO materials (id, name, file_path, mime_type, size_bytes, classroom_id, uploaded_by, created_at, updated_at)
	VALUES (:id, :name, :file_path, :mime_type, :size_bytes, :classroom_id, :uploaded_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID retrieves one material row.
func (r *MaterialRepository) GetByID(ctx context.Context, id string) (*models.Material, error) {
	query := fmt.Sprintf(`SELECT %s FROM materials WHERE id = $1 LIMIT 1`, materialColumns)
	var material models.Material
	if err := r.db.GetContext(ctx, &material, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &material, nil
}

// List returns materials applying filters, newest first.
func (r *MaterialRepository) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error) {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("SELECT DISTINCT m.%s FROM materials m",
		strings.ReplaceAll(materialColumns, ", ", ", m.")))
	args := make([]interface{}, 0, 4)
	conditions := make([]string, 0, 3)

	if len(filter.TagNames) > 0 {
		builder.WriteString(" JOIN material_tags mt ON mt.material_id = m.id JOIN tags t ON t.id = mt.tag_id")
		placeholders := make([]string, 0, len(filter.TagNames))
		for _, name := range filter.TagNames {
			args = append(args, name)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, fmt.Sprintf("t.name IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.ClassroomID != "" {
		args = append(args, filter.ClassroomID)
		conditions = append(conditions, fmt.Sprintf("m.classroom_id = $%d", len(args)))
	}
	if filter.UploadedBy != "" {
		args = append(args, filter.UploadedBy)
		conditions = append(conditions, fmt.Sprintf("m.uploaded_by = $%d", len(args)))
	}

	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY m.created_at DESC")

	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

// CountByClassroom returns the number of materials attached to a classroom.
func (r *MaterialRepository) CountByClassroom(ctx context.Context, classroomID string) (int, error) {
	const query = `SELECT COUNT(*) FROM materials WHERE classroom_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classroomID); err != nil {
		return 0, fmt.Errorf("count classroom materials: %w", err)
	}
	return count, nil
}

// Update renames a material.
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	material.UpdatedAt = time.Now().UTC()
	const query = `UPDATE materials SET name = :name, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, material)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check material update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a material row.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM materials WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check material delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
