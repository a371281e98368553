package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/maestre-ai/maestre-api/internal/models"
)

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func userRows(u *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "username", "password_hash", "first_name", "last_name", "region", "city", "role", "active", "created_at", "updated_at"}).
		AddRow(u.ID, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Region, u.City, u.Role, u.Active, time.Now(), time.Now())
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{
		Email:        "ana@example.com",
		Username:     "ana",
		PasswordHash: "hash",
		FirstName:    "Ana",
		Region:       "Madrid",
		Role:         models.RoleTeacher,
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)

	mock.ExpectQuery("SELECT id, email, username").
		WithArgs(user.Email).
		WillReturnRows(userRows(user))

	found, err := repo.FindByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.Equal(t, user.Username, found.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIdentifierMatchesUsername(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	user := &models.User{ID: "user-1", Email: "ana@example.com", Username: "ana", Role: models.RoleTeacher, Active: true}

	mock.ExpectQuery("SELECT id, email, username").
		WithArgs("ana").
		WillReturnRows(userRows(user))

	found, err := repo.FindByIdentifier(context.Background(), "ana")
	require.NoError(t, err)
	require.Equal(t, "user-1", found.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery("SELECT id, email, username").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryEmailOrUsernameTaken(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()

	repo := NewUserRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WithArgs("ana@example.com", "ana").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.EmailOrUsernameTaken(context.Background(), "ana@example.com", "ana")
	require.NoError(t, err)
	require.True(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}
