package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
	"github.com/maestre-ai/maestre-api/pkg/llm"
	"github.com/maestre-ai/maestre-api/pkg/render"
)

type classroomContextResolver interface {
	Context(ctx context.Context, userID, id string) (*ClassroomContext, error)
}

type generationUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type referenceExtractor interface {
	ExtractFromMaterial(ctx context.Context, userID, materialID string) (*models.ReferenceDocument, error)
}

// GenerationConfig selects models for the generation backend.
type GenerationConfig struct {
	DefaultModel  string
	AllowedModels []string
}

// GenerationService drives the exam and lesson plan pipeline: validate,
// resolve context, compile the prompt, call the model and render the result.
type GenerationService struct {
	generator  llm.Generator
	classrooms classroomContextResolver
	users      generationUserReader
	extractor  referenceExtractor
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
	config     GenerationConfig

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewGenerationService constructs a GenerationService.
func NewGenerationService(generator llm.Generator, classrooms classroomContextResolver, users generationUserReader, extractor referenceExtractor, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, config GenerationConfig) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.DefaultModel == "" {
		config.DefaultModel = "llama3.2:3b"
	}
	return &GenerationService{
		generator:  generator,
		classrooms: classrooms,
		users:      users,
		extractor:  extractor,
		validator:  validate,
		logger:     logger,
		metrics:    metrics,
		config:     config,
		inFlight:   make(map[string]struct{}),
	}
}

// GenerateExam runs the exam maker pipeline for one request.
func (s *GenerationService) GenerateExam(ctx context.Context, userID string, req dto.GenerateExamRequest) (*models.GeneratedArtifact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	itemType := models.ItemType(req.QuestionType)
	if !models.ValidItemType(itemType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported question type %q", req.QuestionType))
	}
	scoringMode := models.ScoringMode(req.ScoringMode)
	if scoringMode == "" {
		scoringMode = models.ScoringEqual
	}
	if scoringMode == models.ScoringCustom && req.CustomScoringDetails == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "custom scoring requires a distribution description")
	}

	genReq := models.GenerationRequest{
		Tool:                   models.ToolExamMaker,
		Subject:                req.Subject,
		ArtifactName:           req.ExamName,
		Quantity:               req.NumQuestions,
		ItemType:               itemType,
		ClassroomID:            req.ClassroomID,
		ScoringMode:            scoringMode,
		CustomDetails:          req.CustomScoringDetails,
		TotalPoints:            req.TotalPoints,
		AdditionalInstructions: req.AdditionalInstructions,
		ModelID:                req.Model,
		ReferenceText:          req.ReferenceText,
	}
	return s.run(ctx, userID, genReq, req.MaterialID)
}

// GeneratePlan runs the class planner pipeline for one request.
func (s *GenerationService) GeneratePlan(ctx context.Context, userID string, req dto.GeneratePlanRequest) (*models.GeneratedArtifact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}

	genReq := models.GenerationRequest{
		Tool:                   models.ToolClassPlanner,
		Subject:                req.Subject,
		ArtifactName:           req.PlanName,
		Quantity:               req.NumLessons,
		ClassroomID:            req.ClassroomID,
		Theme:                  req.Theme,
		PlayfulnessLevel:       req.PlayfulnessLevel,
		AdditionalInstructions: req.AdditionalInstructions,
		ModelID:                req.Model,
		ReferenceText:          req.ReferenceText,
	}
	return s.run(ctx, userID, genReq, req.MaterialID)
}

func (s *GenerationService) run(ctx context.Context, userID string, req models.GenerationRequest, materialID string) (*models.GeneratedArtifact, error) {
	if err := s.acquire(userID); err != nil {
		return nil, err
	}
	defer s.release(userID)

	classroom, err := s.classrooms.Context(ctx, userID, req.ClassroomID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	userCtx := UserContext{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Region:    user.Region,
	}

	// The reference slot holds at most one source. Pasted text occupies it
	// first, so selecting a material on top fails until the text is removed.
	var slot models.ReferenceSlot
	if req.ReferenceText != "" {
		if err := slot.Attach(&models.ReferenceDocument{
			SourceName:    "pasted text",
			ExtractedText: req.ReferenceText,
			Origin:        models.OriginUploaded,
		}); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "reference slot occupied")
		}
	}
	if materialID != "" {
		if slot.Get() != nil {
			return nil, appErrors.Wrap(models.ErrReferenceAttached, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
				"a reference is already attached; remove it before selecting a material")
		}
		doc, err := s.extractor.ExtractFromMaterial(ctx, userID, materialID)
		if err != nil {
			return nil, err
		}
		if err := slot.Attach(doc); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "reference slot occupied")
		}
	}
	req.ReferenceText = slot.Text()

	var prompt string
	switch req.Tool {
	case models.ToolClassPlanner:
		prompt = CompilePlanPrompt(req, classroom, userCtx)
	default:
		prompt = CompileExamPrompt(req, classroom, userCtx)
	}

	model := s.resolveModel(req.ModelID)
	started := time.Now()
	raw, err := s.generator.Generate(ctx, prompt, model)
	if s.metrics != nil {
		s.metrics.ObserveGeneration(string(req.Tool), model, err == nil, time.Since(started))
	}
	if err != nil {
		s.logger.Warn("generation failed",
			zap.String("tool", string(req.Tool)),
			zap.String("model", model),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return nil, err
	}
	s.logger.Info("generation complete",
		zap.String("tool", string(req.Tool)),
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("raw_chars", len(raw)))

	return &models.GeneratedArtifact{
		RawText:      raw,
		RenderedHTML: render.Format(raw),
		ModelID:      model,
		Tool:         req.Tool,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// acquire enforces one in-flight generation per user.
func (s *GenerationService) acquire(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return appErrors.Clone(appErrors.ErrConflict, "a generation request is already in progress")
	}
	s.inFlight[userID] = struct{}{}
	return nil
}

func (s *GenerationService) release(userID string) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}

func (s *GenerationService) resolveModel(requested string) string {
	if requested == "" {
		return s.config.DefaultModel
	}
	if len(s.config.AllowedModels) == 0 {
		return requested
	}
	for _, m := range s.config.AllowedModels {
		if m == requested {
			return requested
		}
	}
	return s.config.DefaultModel
}
