package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

// ExtractionConfig bounds document extraction.
type ExtractionConfig struct {
	MaxFileSizeBytes int64
	FetchTimeout     time.Duration
}

type materialContentReader interface {
	Content(ctx context.Context, userID, id string) (*models.Material, []byte, error)
}

// ExtractionService pulls plain text out of .docx documents, either
// uploaded directly or already stored as classroom materials.
type ExtractionService struct {
	materials  materialContentReader
	httpClient *http.Client
	logger     *zap.Logger
	config     ExtractionConfig
}

// NewExtractionService constructs an ExtractionService.
func NewExtractionService(materials materialContentReader, logger *zap.Logger, config ExtractionConfig) *ExtractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxFileSizeBytes <= 0 {
		config.MaxFileSizeBytes = 5 * 1024 * 1024
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 30 * time.Second
	}
	return &ExtractionService{
		materials:  materials,
		httpClient: &http.Client{Timeout: config.FetchTimeout},
		logger:     logger,
		config:     config,
	}
}

// ExtractFromUpload validates and parses an uploaded document. The extension
// and size checks run before the archive is touched.
func (s *ExtractionService) ExtractFromUpload(filename string, data []byte) (*models.ReferenceDocument, error) {
	if !strings.EqualFold(path.Ext(filename), ".docx") {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFileType, "only .docx files are supported")
	}
	if int64(len(data)) > s.config.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit", s.config.MaxFileSizeBytes/(1024*1024)))
	}

	text, err := extractDocxText(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "failed to extract document text")
	}
	return &models.ReferenceDocument{
		SourceName:    filename,
		ExtractedText: text,
		Origin:        models.OriginUploaded,
	}, nil
}

// ExtractFromMaterial parses a previously uploaded classroom material.
func (s *ExtractionService) ExtractFromMaterial(ctx context.Context, userID, materialID string) (*models.ReferenceDocument, error) {
	material, data, err := s.materials.Content(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(path.Ext(material.FilePath), ".docx") {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFileType, "only .docx materials can be used as reference text")
	}

	text, err := extractDocxText(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "failed to extract material text")
	}
	return &models.ReferenceDocument{
		SourceName:    material.Name,
		ExtractedText: text,
		Origin:        models.OriginClassroomStore,
		OriginID:      material.ID,
	}, nil
}

// ExtractFromURL fetches a remote document and parses it. The extension check
// on the URL path runs before any network call.
func (s *ExtractionService) ExtractFromURL(ctx context.Context, fileURL string) (*models.ReferenceDocument, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid file url")
	}
	if !strings.EqualFold(path.Ext(parsed.Path), ".docx") {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFileType, "only .docx files are supported")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "failed to build fetch request")
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "failed to fetch document")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, appErrors.Clone(appErrors.ErrExtractionFailed, fmt.Sprintf("document fetch returned status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxFileSizeBytes+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "failed to read document")
	}
	if int64(len(data)) > s.config.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit", s.config.MaxFileSizeBytes/(1024*1024)))
	}

	text, err := extractDocxText(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExtractionFailed.Code, appErrors.ErrExtractionFailed.Status, "failed to extract document text")
	}
	return &models.ReferenceDocument{
		SourceName:    path.Base(parsed.Path),
		ExtractedText: text,
		Origin:        models.OriginClassroomStore,
	}, nil
}

// extractDocxText reads word/document.xml inside the archive and collects
// the run texts, keeping paragraph boundaries as newlines.
func extractDocxText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}

	var docFile *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("document.xml missing from archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close() //nolint:errcheck

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	var inText bool
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
