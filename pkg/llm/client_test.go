package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

func TestGenerateSuccess(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "Title: Math Exam"})
	}))
	defer server.Close()

	client := New(server.URL, 0.7, 0)
	out, err := client.Generate(context.Background(), "make an exam", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Title: Math Exam", out)
	assert.Equal(t, "m1", got.Model)
	assert.Equal(t, "make an exam", got.Prompt)
	assert.False(t, got.Stream)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
}

func TestGenerateTransportFailure(t *testing.T) {
	client := New("http://127.0.0.1:1", 0.7, 0)
	_, err := client.Generate(context.Background(), "p", "m")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrGenerationFailed))
}

func TestGenerateEmptyResultRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"done": "true"})
	}))
	defer server.Close()

	client := New(server.URL, 0.7, 0)
	_, err := client.Generate(context.Background(), "p", "m")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrGenerationRejected))
}

func TestGenerateBackendErrorMessageSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model not found"})
	}))
	defer server.Close()

	client := New(server.URL, 0.7, 0)
	_, err := client.Generate(context.Background(), "p", "missing")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrGenerationRejected))
	assert.Contains(t, err.Error(), "model not found")
}

func TestGenerateContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(server.URL, 0.7, 0)
	_, err := client.Generate(ctx, "p", "m")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrGenerationFailed))
}
