package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/i18n"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
	"github.com/maestre-ai/maestre-api/pkg/export"
	"github.com/maestre-ai/maestre-api/pkg/jobs"
	"github.com/maestre-ai/maestre-api/pkg/storage"
)

type artifactStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type materialUploader interface {
	Upload(ctx context.Context, userID string, req dto.UploadMaterialRequest, filename string, data []byte) (*models.Material, error)
}

// ArtifactConfig tunes artifact export behaviour.
type ArtifactConfig struct {
	APIPrefix       string
	ResultTTL       time.Duration
	CleanupInterval time.Duration
}

// ArtifactService turns generated text into downloadable documents and
// optionally stores them back as classroom materials.
type ArtifactService struct {
	storage   artifactStorage
	signer    *storage.SignedURLSigner
	materials materialUploader
	pdf       *export.PDFExporter
	queue     *jobs.Queue
	logger    *zap.Logger
	cfg       ArtifactConfig
}

// NewArtifactService constructs an ArtifactService with its cleanup queue.
func NewArtifactService(store artifactStorage, signer *storage.SignedURLSigner, materials materialUploader, logger *zap.Logger, cfg ArtifactConfig) *ArtifactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	s := &ArtifactService{
		storage:   store,
		signer:    signer,
		materials: materials,
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		cfg:       cfg,
	}
	s.queue = jobs.NewQueue("artifact-cleanup", s.handleCleanupJob, jobs.QueueConfig{
		Workers: 1,
		Logger:  logger,
	})
	return s
}

// Export renders raw generated text into a PDF or standalone HTML document,
// stores it, and returns a signed download link.
func (s *ArtifactService) Export(ctx context.Context, userID, lang string, req dto.ExportArtifactRequest) (*dto.ExportArtifactResponse, error) {
	if strings.TrimSpace(req.RawText) == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidArtifact, "nothing to export: generated content is empty")
	}

	fallback := i18n.DefaultArtifactName(lang, req.Tool)
	title := req.Title
	if title == "" {
		title = fallbackTitle(req.Subject, fallback)
	}
	filename := export.ArtifactFilename(req.Subject, fallback)

	var payload []byte
	var err error
	format := req.Format
	if format == "" {
		format = "pdf"
	}
	switch format {
	case "html":
		filename = strings.TrimSuffix(filename, ".pdf") + ".html"
		payload = []byte(export.HTMLDocument(req.RawText, title))
	default:
		payload, err = s.pdf.Render(req.RawText, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render artifact pdf")
		}
	}

	artifactID := uuid.NewString()
	relPath := fmt.Sprintf("artifacts/%s/%s/%s", userID, artifactID, filename)
	if _, err := s.storage.Save(relPath, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store artifact")
	}

	token, expiresAt, err := s.signer.Generate(artifactID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &dto.ExportArtifactResponse{
		Filename:    filename,
		DownloadURL: fmt.Sprintf("%s/tools/artifacts/%s", prefix, token),
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

// Download resolves a signed token into the stored artifact bytes.
func (s *ArtifactService) Download(token string) ([]byte, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download link")
	}
	data, err := s.storage.Read(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "artifact no longer available")
	}
	parts := strings.Split(relPath, "/")
	return data, parts[len(parts)-1], nil
}

// SaveToClassroom renders the artifact as PDF and uploads it as a classroom
// material. Both preconditions fail before any rendering or storage happens.
func (s *ArtifactService) SaveToClassroom(ctx context.Context, userID, lang string, req dto.SaveArtifactRequest) (*models.Material, error) {
	if req.ClassroomID == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingClassroom, "a classroom must be selected before saving")
	}
	if strings.TrimSpace(req.RawText) == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidArtifact, "nothing to save: generated content is empty")
	}

	fallback := i18n.DefaultArtifactName(lang, req.Tool)
	filename := export.ArtifactFilename(req.Subject, fallback)
	title := fallbackTitle(req.Subject, fallback)

	payload, err := s.pdf.Render(req.RawText, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render artifact pdf")
	}

	material, err := s.materials.Upload(ctx, userID, dto.UploadMaterialRequest{
		Name:        strings.TrimSuffix(filename, ".pdf"),
		ClassroomID: req.ClassroomID,
	}, filename, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("artifact saved to classroom",
		zap.String("material_id", material.ID),
		zap.String("classroom_id", req.ClassroomID))
	return material, nil
}

// StartCleanup launches the cleanup queue and a ticker that enqueues
// expiry sweeps at the configured interval.
func (s *ArtifactService) StartCleanup(ctx context.Context) {
	s.queue.Start(ctx)
	go func() {
		ticker := time.NewTicker(s.cfg.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.queue.Stop()
				return
			case <-ticker.C:
				job := jobs.Job{ID: uuid.NewString(), Type: "cleanup-expired"}
				if err := s.queue.Enqueue(job); err != nil {
					s.logger.Warn("failed to enqueue artifact cleanup", zap.Error(err))
				}
			}
		}
	}()
}

func (s *ArtifactService) handleCleanupJob(ctx context.Context, job jobs.Job) error {
	deleted, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		return err
	}
	if len(deleted) > 0 {
		s.logger.Info("expired artifacts removed", zap.Int("count", len(deleted)))
	}
	return nil
}

func fallbackTitle(subject, fallback string) string {
	if strings.TrimSpace(subject) == "" {
		return fallback
	}
	return fmt.Sprintf("%s - %s", fallback, subject)
}
