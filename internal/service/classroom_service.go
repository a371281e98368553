package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// RegisterCustomValidations installs domain validation tags on the shared validator.
func RegisterCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return academicYearPattern.MatchString(fl.Field().String())
	})
}

type classroomRepository interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	GetByID(ctx context.Context, id string) (*models.Classroom, error)
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id string) error
}

type classroomCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ClassroomContext is the classroom snapshot handed to the prompt compiler.
type ClassroomContext struct {
	Name           string `json:"name"`
	AcademicCourse string `json:"academic_course"`
	EducationLevel string `json:"education_level"`
	AcademicYear   string `json:"academic_year"`
	StudentCount   int    `json:"student_count"`
	Description    string `json:"description"`
}

// ClassroomService manages classroom CRUD and the cached generation context.
type ClassroomService struct {
	repo      classroomRepository
	cache     classroomCache
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewClassroomService constructs a ClassroomService.
func NewClassroomService(repo classroomRepository, cache classroomCache, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *ClassroomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	RegisterCustomValidations(validate)
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &ClassroomService{repo: repo, cache: cache, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// Create stores a new classroom owned by the caller.
func (s *ClassroomService) Create(ctx context.Context, creatorID string, req dto.CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	classroom := &models.Classroom{
		Name:           req.Name,
		AcademicCourse: req.AcademicCourse,
		EducationLevel: req.EducationLevel,
		Description:    req.Description,
		AcademicYear:   req.AcademicYear,
		StudentCount:   req.StudentCount,
		CreatorID:      creatorID,
	}
	if err := s.repo.Create(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
	}
	return classroom, nil
}

// Get returns a classroom owned by the caller.
func (s *ClassroomService) Get(ctx context.Context, userID, id string) (*models.Classroom, error) {
	classroom, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	if classroom.CreatorID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "classroom belongs to another user")
	}
	return classroom, nil
}

// List returns the caller's classrooms with pagination metadata.
func (s *ClassroomService) List(ctx context.Context, userID string, req dto.ClassroomFilterRequest) ([]models.Classroom, *models.Pagination, error) {
	filter := models.ClassroomFilter{
		CreatorID:    userID,
		AcademicYear: req.AcademicYear,
		Search:       req.Search,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}
	classrooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return classrooms, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Update applies mutations to a classroom owned by the caller.
func (s *ClassroomService) Update(ctx context.Context, userID, id string, req dto.UpdateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	classroom, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		classroom.Name = *req.Name
	}
	if req.AcademicCourse != nil {
		classroom.AcademicCourse = *req.AcademicCourse
	}
	if req.EducationLevel != nil {
		classroom.EducationLevel = *req.EducationLevel
	}
	if req.Description != nil {
		classroom.Description = *req.Description
	}
	if req.AcademicYear != nil {
		classroom.AcademicYear = *req.AcademicYear
	}
	if req.StudentCount != nil {
		classroom.StudentCount = *req.StudentCount
	}

	if err := s.repo.Update(ctx, classroom); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update classroom")
	}
	s.invalidateContext(ctx, id)
	return classroom, nil
}

// Delete removes a classroom owned by the caller.
func (s *ClassroomService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete classroom")
	}
	s.invalidateContext(ctx, id)
	return nil
}

// Context returns the cached prompt context for a classroom, loading it on miss.
func (s *ClassroomService) Context(ctx context.Context, userID, id string) (*ClassroomContext, error) {
	key := classroomContextKey(id)
	if s.cache != nil {
		var cached ClassroomContext
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("classroom context cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	classroom, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	cc := &ClassroomContext{
		Name:           classroom.Name,
		AcademicCourse: classroom.AcademicCourse,
		EducationLevel: classroom.EducationLevel,
		AcademicYear:   classroom.AcademicYear,
		StudentCount:   classroom.StudentCount,
		Description:    classroom.Description,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cc, s.cacheTTL); err != nil {
			s.logger.Warn("classroom context cache write failed", zap.Error(err))
		}
	}
	return cc, nil
}

func (s *ClassroomService) invalidateContext(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, classroomContextKey(id)); err != nil {
		s.logger.Warn("classroom context cache invalidation failed", zap.Error(err))
	}
}

func classroomContextKey(id string) string {
	return fmt.Sprintf("classroom:context:%s", id)
}
