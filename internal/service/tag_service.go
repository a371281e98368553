package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

type tagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	FindByName(ctx context.Context, creatorID, name string) (*models.Tag, error)
	ListByCreator(ctx context.Context, creatorID string) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id string) error
}

// TagService manages per-user material tags.
type TagService struct {
	repo      tagRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTagService constructs a TagService.
func NewTagService(repo tagRepository, validate *validator.Validate, logger *zap.Logger) *TagService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TagService{repo: repo, validator: validate, logger: logger}
}

// Create stores a new tag; names are unique per creator.
func (s *TagService) Create(ctx context.Context, userID string, req dto.CreateTagRequest) (*models.Tag, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tag payload")
	}

	if _, err := s.repo.FindByName(ctx, userID, req.Name); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "tag already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check tag name")
	}

	tag := &models.Tag{Name: req.Name, Color: req.Color, CreatorID: userID}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tag")
	}
	return tag, nil
}

// List returns all tags owned by the caller.
func (s *TagService) List(ctx context.Context, userID string) ([]models.Tag, error) {
	tags, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tags")
	}
	return tags, nil
}

// Update renames or recolors a tag owned by the caller.
func (s *TagService) Update(ctx context.Context, userID, id string, req dto.UpdateTagRequest) (*models.Tag, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tag payload")
	}
	tag, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tag")
	}
	return tag, nil
}

// Delete removes a tag owned by the caller, detaching it from materials.
func (s *TagService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete tag")
	}
	return nil
}

func (s *TagService) getOwned(ctx context.Context, userID, id string) (*models.Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tag not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tag")
	}
	if tag.CreatorID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "tag belongs to another user")
	}
	return tag, nil
}
