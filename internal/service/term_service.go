package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
	"github.com/maestre-ai/maestre-api/pkg/export"
)

type termRepository interface {
	Create(ctx context.Context, doc *models.TermsDocument) error
	LatestByTag(ctx context.Context, tag string) (*models.TermsDocument, error)
	GetByTagVersion(ctx context.Context, tag, version string) (*models.TermsDocument, error)
	ListVersions(ctx context.Context, tag string) ([]models.TermsDocument, error)
	UpdatePDFPath(ctx context.Context, id, pdfPath string) error
	Delete(ctx context.Context, id string) error
}

type termStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
}

// TermService publishes and serves versioned legal documents.
type TermService struct {
	repo      termRepository
	storage   termStorage
	exporter  *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService constructs a TermService.
func NewTermService(repo termRepository, storage termStorage, validate *validator.Validate, logger *zap.Logger) *TermService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TermService{repo: repo, storage: storage, exporter: export.NewPDFExporter(), validator: validate, logger: logger}
}

// Publish stores a new document version and renders its PDF copy.
func (s *TermService) Publish(ctx context.Context, req dto.CreateTermsRequest) (*models.TermsDocument, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid terms payload")
	}

	if _, err := s.repo.GetByTagVersion(ctx, req.Tag, req.Version); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "terms version already published")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check terms version")
	}

	doc := &models.TermsDocument{
		Tag:     req.Tag,
		Version: req.Version,
		Name:    req.Name,
		Content: req.Content,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create terms document")
	}

	pdf, err := s.exporter.Render(doc.Content, doc.Name)
	if err != nil {
		s.logger.Warn("terms pdf rendering failed", zap.String("tag", doc.Tag), zap.Error(err))
		return doc, nil
	}
	path := fmt.Sprintf("terms/%s_%s.pdf", doc.Tag, doc.Version)
	if _, err := s.storage.Save(path, pdf); err != nil {
		s.logger.Warn("terms pdf storage failed", zap.String("path", path), zap.Error(err))
		return doc, nil
	}
	if err := s.repo.UpdatePDFPath(ctx, doc.ID, path); err != nil {
		s.logger.Warn("terms pdf path update failed", zap.String("id", doc.ID), zap.Error(err))
		return doc, nil
	}
	doc.PDFPath = path
	return doc, nil
}

// Latest returns the newest version for a tag.
func (s *TermService) Latest(ctx context.Context, tag string) (*models.TermsDocument, error) {
	doc, err := s.repo.LatestByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "terms document not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load terms document")
	}
	return doc, nil
}

// Versions lists every published version of a tag, newest first.
func (s *TermService) Versions(ctx context.Context, tag string) ([]models.TermsDocument, error) {
	docs, err := s.repo.ListVersions(ctx, tag)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms versions")
	}
	return docs, nil
}

// Delete removes one published version.
func (s *TermService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "terms document not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete terms document")
	}
	return nil
}

// PDF returns the rendered PDF bytes for one version.
func (s *TermService) PDF(ctx context.Context, tag, version string) ([]byte, string, error) {
	doc, err := s.repo.GetByTagVersion(ctx, tag, version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "terms document not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load terms document")
	}
	if doc.PDFPath == "" {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "terms pdf not available")
	}
	data, err := s.storage.Read(doc.PDFPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read terms pdf")
	}
	return data, fmt.Sprintf("%s_%s.pdf", doc.Tag, doc.Version), nil
}
