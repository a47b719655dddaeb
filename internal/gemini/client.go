// Package gemini is a minimal REST client for the generative model used by
// the recommendation gateway. The model is treated as an opaque text-in,
// text-out service; prompt construction and reply parsing live in the
// service layer.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config carries the connection settings, usually loaded from viper.
type Config struct {
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries uint64
}

// Client calls the generateContent endpoint of a Gemini-style API.
type Client struct {
	cfg    Config
	client *http.Client
}

const (
	defaultTimeout    = 30 * time.Second
	defaultModel      = "gemini-2.0-flash"
	maxOutputTokens   = 2000
	generatePathTmpl  = "%s/v1beta/models/%s:generateContent"
	apiKeyHeader      = "x-goog-api-key"
	initialBackoff    = 500 * time.Millisecond
	maxBackoffElapsed = 2 * time.Minute
)

// ErrEmptyReply is returned when the API answers 200 with no candidates.
var ErrEmptyReply = errors.New("model returned no candidates")

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Request/response wire shapes (only the fields we use).

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// statusError marks an HTTP-level failure so the retry policy can decide
// whether the attempt is worth repeating.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("model API returned status %d: %s", e.code, e.body)
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// GenerateContent sends the prompt and returns the model's raw text reply.
// Transport errors, 429 and 5xx are retried with exponential backoff up to
// MaxRetries; each attempt is bounded by the client timeout and the caller's
// context.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{MaxOutputTokens: maxOutputTokens},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	attempt := func() (string, error) {
		text, err := c.doGenerate(ctx, payload)
		if err == nil {
			return text, nil
		}
		var se *statusError
		if errors.As(err, &se) && !retryable(se.code) {
			return "", backoff.Permanent(err)
		}
		if errors.Is(err, ErrEmptyReply) {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialBackoff
	policy.MaxElapsedTime = maxBackoffElapsed

	return backoff.RetryWithData(attempt,
		backoff.WithContext(backoff.WithMaxRetries(policy, c.cfg.MaxRetries), ctx))
}

func (c *Client) doGenerate(ctx context.Context, payload []byte) (string, error) {
	endpoint := fmt.Sprintf(generatePathTmpl, c.cfg.BaseURL, c.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode, body: truncate(string(body), 200)}
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
