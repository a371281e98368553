package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/maestre-ai/maestre-api/internal/models"
)

func newMaterialRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestMaterialRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newMaterialRepoMock(t)
	defer cleanup()

	repo := NewMaterialRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO materials")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	material := &models.Material{
		Name:        "Unit 3 Notes",
		FilePath:    "materials/unit3.pdf",
		MimeType:    "application/pdf",
		SizeBytes:   2048,
		ClassroomID: "class-1",
		UploadedBy:  "user-1",
	}
	require.NoError(t, repo.Create(context.Background(), material))

	rows := sqlmock.NewRows([]string{"id", "name", "file_path", "mime_type", "size_bytes", "classroom_id", "uploaded_by", "created_at", "updated_at"}).
		AddRow(material.ID, material.Name, material.FilePath, material.MimeType, material.SizeBytes, material.ClassroomID, material.UploadedBy, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, name, file_path").
		WithArgs(material.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), material.ID)
	require.NoError(t, err)
	require.Equal(t, material.Name, found.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryListJoinsTags(t *testing.T) {
	db, mock, cleanup := newMaterialRepoMock(t)
	defer cleanup()

	repo := NewMaterialRepository(db)
	rows := sqlmock.NewRows([]string{"id", "name", "file_path", "mime_type", "size_bytes", "classroom_id", "uploaded_by", "created_at", "updated_at"}).
		AddRow("mat-1", "Grammar", "materials/grammar.pdf", "application/pdf", 1024, "class-1", "user-1", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT DISTINCT m\.id, m\.name,.*JOIN material_tags mt.*JOIN tags t`).
		WithArgs("grammar", "class-1").
		WillReturnRows(rows)

	materials, err := repo.List(context.Background(), models.MaterialFilter{
		ClassroomID: "class-1",
		TagNames:    []string{"grammar"},
	})
	require.NoError(t, err)
	require.Len(t, materials, 1)
	require.Equal(t, "mat-1", materials[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryCountByClassroom(t *testing.T) {
	db, mock, cleanup := newMaterialRepoMock(t)
	defer cleanup()

	repo := NewMaterialRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM materials")).
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountByClassroom(context.Background(), "class-1")
	require.NoError(t, err)
	require.Equal(t, 5, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
