package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

type materialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id string) (*models.Material, error)
	List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error)
	CountByClassroom(ctx context.Context, classroomID string) (int, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id string) error
}

type materialTagRepository interface {
	FindByName(ctx context.Context, creatorID, name string) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	ListByMaterial(ctx context.Context, materialID string) ([]models.Tag, error)
	ReplaceForMaterial(ctx context.Context, materialID string, tagIDs []string) error
}

type materialStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	Delete(filename string) error
}

type classroomGetter interface {
	Get(ctx context.Context, userID, id string) (*models.Classroom, error)
}

// MaterialConfig bounds material uploads.
type MaterialConfig struct {
	MaxPerClassroom  int
	MaxFileSizeBytes int64
}

// MaterialService manages classroom document uploads and tagging.
type MaterialService struct {
	repo       materialRepository
	tags       materialTagRepository
	storage    materialStorage
	classrooms classroomGetter
	validator  *validator.Validate
	logger     *zap.Logger
	config     MaterialConfig
}

// NewMaterialService constructs a MaterialService.
func NewMaterialService(repo materialRepository, tags materialTagRepository, storage materialStorage, classrooms classroomGetter, validate *validator.Validate, logger *zap.Logger, config MaterialConfig) *MaterialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.MaxPerClassroom <= 0 {
		config.MaxPerClassroom = 5
	}
	if config.MaxFileSizeBytes <= 0 {
		config.MaxFileSizeBytes = 5 * 1024 * 1024
	}
	return &MaterialService{repo: repo, tags: tags, storage: storage, classrooms: classrooms, validator: validate, logger: logger, config: config}
}

// allowedMaterialExtensions covers documents the extractor and viewer understand.
var allowedMaterialExtensions = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Upload stores the document bytes and its metadata, enforcing the per-classroom cap.
func (s *MaterialService) Upload(ctx context.Context, userID string, req dto.UploadMaterialRequest, filename string, data []byte) (*models.Material, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := allowedMaterialExtensions[ext]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFileType, fmt.Sprintf("unsupported file type %q, expected .pdf or .docx", ext))
	}
	if int64(len(data)) > s.config.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrFileTooLarge, fmt.Sprintf("file exceeds the %d MB limit", s.config.MaxFileSizeBytes/(1024*1024)))
	}

	if _, err := s.classrooms.Get(ctx, userID, req.ClassroomID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByClassroom(ctx, req.ClassroomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count classroom materials")
	}
	if count >= s.config.MaxPerClassroom {
		return nil, appErrors.Clone(appErrors.ErrUploadRejected,
			fmt.Sprintf("This classroom already has the maximum number of files (%d).", s.config.MaxPerClassroom))
	}

	materialID := uuid.NewString()
	storedPath := fmt.Sprintf("materials/%s/%s%s", req.ClassroomID, materialID, ext)
	if _, err := s.storage.Save(storedPath, data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUploadFailed.Code, appErrors.ErrUploadFailed.Status, "failed to store material file")
	}

	material := &models.Material{
		ID:          materialID,
		Name:        req.Name,
		FilePath:    storedPath,
		MimeType:    mimeType,
		SizeBytes:   int64(len(data)),
		ClassroomID: req.ClassroomID,
		UploadedBy:  userID,
	}
	if err := s.repo.Create(ctx, material); err != nil {
		if derr := s.storage.Delete(storedPath); derr != nil {
			s.logger.Warn("orphaned material file after failed insert", zap.String("path", storedPath), zap.Error(derr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create material")
	}

	if tagNames := splitTagList(req.Tags); len(tagNames) > 0 {
		if err := s.applyTags(ctx, userID, material, tagNames); err != nil {
			s.logger.Warn("failed to tag material", zap.String("material_id", material.ID), zap.Error(err))
		}
	}
	return material, nil
}

// Get returns a material and its tags, enforcing classroom ownership.
func (s *MaterialService) Get(ctx context.Context, userID, id string) (*models.Material, error) {
	material, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	if _, err := s.classrooms.Get(ctx, userID, material.ClassroomID); err != nil {
		return nil, err
	}
	if tags, err := s.tags.ListByMaterial(ctx, id); err == nil {
		material.Tags = tags
	}
	return material, nil
}

// List returns materials filtered by classroom and/or tag names.
func (s *MaterialService) List(ctx context.Context, userID string, req dto.MaterialFilterRequest) ([]models.Material, error) {
	if req.ClassroomID != "" {
		if _, err := s.classrooms.Get(ctx, userID, req.ClassroomID); err != nil {
			return nil, err
		}
	}
	filter := models.MaterialFilter{
		ClassroomID: req.ClassroomID,
		TagNames:    splitTagList(req.Tags),
	}
	if req.ClassroomID == "" {
		filter.UploadedBy = userID
	}
	materials, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list materials")
	}
	for i := range materials {
		if tags, err := s.tags.ListByMaterial(ctx, materials[i].ID); err == nil {
			materials[i].Tags = tags
		}
	}
	return materials, nil
}

// Content returns the stored bytes of a material for extraction or download.
func (s *MaterialService) Content(ctx context.Context, userID, id string) (*models.Material, []byte, error) {
	material, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.storage.Read(material.FilePath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read material file")
	}
	return material, data, nil
}

// Update renames a material and optionally replaces its tag set.
func (s *MaterialService) Update(ctx context.Context, userID, id string, req dto.UpdateMaterialRequest) (*models.Material, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}
	material, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		material.Name = *req.Name
		if err := s.repo.Update(ctx, material); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update material")
		}
	}
	if req.Tags != nil {
		if err := s.applyTags(ctx, userID, material, req.Tags); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update material tags")
		}
	}
	return material, nil
}

// Delete removes a material and its stored file.
func (s *MaterialService) Delete(ctx context.Context, userID, id string) error {
	material, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete material")
	}
	if err := s.storage.Delete(material.FilePath); err != nil {
		s.logger.Warn("failed to delete material file", zap.String("path", material.FilePath), zap.Error(err))
	}
	return nil
}

func (s *MaterialService) applyTags(ctx context.Context, userID string, material *models.Material, tagNames []string) error {
	tagIDs := make([]string, 0, len(tagNames))
	resolved := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := s.tags.FindByName(ctx, userID, name)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			tag = &models.Tag{Name: name, CreatorID: userID}
			if err := s.tags.Create(ctx, tag); err != nil {
				return err
			}
		}
		tagIDs = append(tagIDs, tag.ID)
		resolved = append(resolved, *tag)
	}
	if err := s.tags.ReplaceForMaterial(ctx, material.ID, tagIDs); err != nil {
		return err
	}
	material.Tags = resolved
	return nil
}

// splitTagList parses a comma separated tag string, dropping blanks.
func splitTagList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
