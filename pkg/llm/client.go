// Package llm talks to the Ollama-compatible text-generation backend.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

// Generator is the minimal contract the pipeline needs from a
// text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Client issues non-streaming generate calls to the backend.
type Client struct {
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

// New builds a client for the given base URL. A zero timeout disables
// the client-side deadline; callers are expected to thread a context.
func New(baseURL string, temperature float64, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate sends one prompt and returns the raw generated text. There
// are no automatic retries: transport failures surface as
// GENERATION_FAILED, a reachable backend without a usable result field
// as GENERATION_REJECTED. Cancellation flows through ctx.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:       model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode generation request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrGenerationFailed.Code, appErrors.ErrGenerationFailed.Status, appErrors.ErrGenerationFailed.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrGenerationFailed.Code, appErrors.ErrGenerationFailed.Status, "failed to read generation response")
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrGenerationRejected.Code, appErrors.ErrGenerationRejected.Status, appErrors.ErrGenerationRejected.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
		}
		return "", appErrors.Clone(appErrors.ErrGenerationRejected, msg)
	}

	if result.Response == "" {
		return "", appErrors.ErrGenerationRejected
	}

	return result.Response, nil
}
