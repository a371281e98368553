package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

type userRepoStub struct {
	users map[string]*models.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]*models.User)}
}

func (r *userRepoStub) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == identifier || u.Username == identifier {
			copy := *u
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (r *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-1"
	}
	r.users[user.ID] = user
	return nil
}

func (r *userRepoStub) Update(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *userRepoStub) Deactivate(ctx context.Context, id string) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *userRepoStub) EmailOrUsernameTaken(ctx context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func newTestAuthService(repo *userRepoStub) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "maestre-api",
	})
}

func TestAuthServiceSignupAndSignin(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestAuthService(repo)

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:     "ana@example.com",
		Username:  "ana",
		Password:  "supersecret",
		FirstName: "Ana",
		Region:    "Madrid",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, models.RoleTeacher, resp.User.Role)

	signin, err := svc.Signin(context.Background(), dto.SigninRequest{Identifier: "ana", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, signin.Token)

	claims, err := svc.ValidateToken(signin.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
}

func TestAuthServiceSignupDuplicate(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestAuthService(repo)

	req := dto.SignupRequest{Email: "ana@example.com", Username: "ana", Password: "supersecret", FirstName: "Ana"}
	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestAuthServiceSigninWrongPassword(t *testing.T) {
	repo := newUserRepoStub()
	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	repo.users["user-1"] = &models.User{
		ID: "user-1", Email: "ana@example.com", Username: "ana",
		PasswordHash: string(hash), Role: models.RoleTeacher, Active: true,
	}
	svc := newTestAuthService(repo)

	_, err := svc.Signin(context.Background(), dto.SigninRequest{Identifier: "ana", Password: "wrongpassword"})
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceSigninInactiveAccount(t *testing.T) {
	repo := newUserRepoStub()
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	repo.users["user-1"] = &models.User{
		ID: "user-1", Email: "ana@example.com", Username: "ana",
		PasswordHash: string(hash), Role: models.RoleTeacher, Active: false,
	}
	svc := newTestAuthService(repo)

	_, err := svc.Signin(context.Background(), dto.SigninRequest{Identifier: "ana", Password: "supersecret"})
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrInactiveAccount))
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	repo := newUserRepoStub()
	repo.users["user-1"] = &models.User{
		ID: "user-1", Email: "ana@example.com", Username: "ana",
		FirstName: "Ana", Region: "Madrid", Role: models.RoleTeacher, Active: true,
	}
	svc := newTestAuthService(repo)

	city := "Sevilla"
	info, err := svc.UpdateProfile(context.Background(), "user-1", dto.UpdateUserRequest{City: &city})
	require.NoError(t, err)
	require.Equal(t, "Ana", info.FirstName)
	require.Equal(t, "Sevilla", repo.users["user-1"].City)
}
