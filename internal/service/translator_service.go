package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maestre-ai/maestre-api/internal/dto"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
	"github.com/maestre-ai/maestre-api/pkg/llm"
)

type translationHistoryStore interface {
	PushHistory(ctx context.Context, key string, entry interface{}, limit int64, ttl time.Duration) error
	ListHistory(ctx context.Context, key string, limit int64) ([]string, error)
}

// TranslatorConfig bounds the per-user translation history.
type TranslatorConfig struct {
	DefaultModel string
	HistoryLimit int64
	HistoryTTL   time.Duration
}

// TranslatorService wraps the generation backend as a translation tool and
// keeps a short per-user history in Redis.
type TranslatorService struct {
	generator llm.Generator
	history   translationHistoryStore
	validator *validator.Validate
	logger    *zap.Logger
	config    TranslatorConfig
}

// NewTranslatorService constructs a TranslatorService.
func NewTranslatorService(generator llm.Generator, history translationHistoryStore, validate *validator.Validate, logger *zap.Logger, config TranslatorConfig) *TranslatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = 10
	}
	if config.DefaultModel == "" {
		config.DefaultModel = "llama3.2:3b"
	}
	return &TranslatorService{generator: generator, history: history, validator: validate, logger: logger, config: config}
}

// Translate sends the wrapped text to the model and records the exchange.
func (s *TranslatorService) Translate(ctx context.Context, userID string, req dto.TranslateRequest) (*dto.TranslateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid translation payload")
	}

	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "auto-detected"
	}
	prompt := buildTranslationPrompt(req.Text, sourceLang, req.TargetLang)

	model := req.Model
	if model == "" {
		model = s.config.DefaultModel
	}
	translated, err := s.generator.Generate(ctx, prompt, model)
	if err != nil {
		return nil, err
	}
	translated = strings.TrimSpace(translated)

	entry := dto.TranslationHistoryEntry{
		Text:           req.Text,
		TranslatedText: translated,
		SourceLang:     sourceLang,
		TargetLang:     req.TargetLang,
		CreatedAt:      time.Now().UTC().Unix(),
	}
	if err := s.history.PushHistory(ctx, translationHistoryKey(userID), entry, s.config.HistoryLimit, s.config.HistoryTTL); err != nil {
		s.logger.Warn("failed to record translation history", zap.String("user_id", userID), zap.Error(err))
	}

	return &dto.TranslateResponse{
		TranslatedText: translated,
		SourceLang:     sourceLang,
		TargetLang:     req.TargetLang,
	}, nil
}

// History returns the caller's most recent translations, newest first.
func (s *TranslatorService) History(ctx context.Context, userID string) ([]dto.TranslationHistoryEntry, error) {
	raw, err := s.history.ListHistory(ctx, translationHistoryKey(userID), s.config.HistoryLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load translation history")
	}
	entries := make([]dto.TranslationHistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry dto.TranslationHistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			s.logger.Warn("skipping malformed history entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func buildTranslationPrompt(text, sourceLang, targetLang string) string {
	var sb strings.Builder
	sb.WriteString("You are a professional translator. Translate the text below from ")
	sb.WriteString(sourceLang)
	sb.WriteString(" to ")
	sb.WriteString(targetLang)
	sb.WriteString(".\nRespond with ONLY the translated text, no explanations or notes.\n\nText to translate:\n")
	sb.WriteString(text)
	return sb.String()
}

func translationHistoryKey(userID string) string {
	return fmt.Sprintf("translator:history:%s", userID)
}
