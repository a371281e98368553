package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maestre-ai/maestre-api/internal/dto"
)

type historyStoreStub struct {
	entries []string
	limit   int64
}

func (h *historyStoreStub) PushHistory(ctx context.Context, key string, entry interface{}, limit int64, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	h.entries = append([]string{string(payload)}, h.entries...)
	h.limit = limit
	if int64(len(h.entries)) > limit {
		h.entries = h.entries[:limit]
	}
	return nil
}

func (h *historyStoreStub) ListHistory(ctx context.Context, key string, limit int64) ([]string, error) {
	if int64(len(h.entries)) > limit {
		return h.entries[:limit], nil
	}
	return h.entries, nil
}

func TestTranslatorServiceTranslate(t *testing.T) {
	gen := &generatorStub{result: "  Hola mundo  "}
	history := &historyStoreStub{}
	svc := NewTranslatorService(gen, history, nil, nil, TranslatorConfig{})

	resp, err := svc.Translate(context.Background(), "user-1", dto.TranslateRequest{
		Text:       "Hello world",
		TargetLang: "Spanish",
	})
	require.NoError(t, err)
	require.Equal(t, "Hola mundo", resp.TranslatedText)
	require.Equal(t, "auto-detected", resp.SourceLang)

	require.Contains(t, gen.prompt, "to Spanish")
	require.Contains(t, gen.prompt, "Hello world")
	require.Len(t, history.entries, 1)
}

func TestTranslatorServiceHistoryCapped(t *testing.T) {
	gen := &generatorStub{result: "ok"}
	history := &historyStoreStub{}
	svc := NewTranslatorService(gen, history, nil, nil, TranslatorConfig{HistoryLimit: 10})

	for i := 0; i < 15; i++ {
		_, err := svc.Translate(context.Background(), "user-1", dto.TranslateRequest{
			Text:       "Hello",
			TargetLang: "Spanish",
		})
		require.NoError(t, err)
	}
	require.Len(t, history.entries, 10)

	entries, err := svc.History(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 10)
	require.Equal(t, "ok", entries[0].TranslatedText)
}
