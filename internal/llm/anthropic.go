package llm

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/ratelimit"
)

const (
	anthropicVersion = "2023-06-01"
	messagesPath     = "/v1/messages"

	// Outbound burst allowance on top of the per-minute rate.
	defaultBurst = 3

	defaultTimeout = 60 * time.Second
)

// AnthropicConfig configures the Anthropic messages-API client.
type AnthropicConfig struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Anthropic is a rate-limited client for the Anthropic messages API.
type Anthropic struct {
	cfg     AnthropicConfig
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *logger.Logger
}

// NewAnthropic creates the client. An empty API key is allowed; Complete
// then reports ErrUnavailable without making a request.
func NewAnthropic(cfg AnthropicConfig, log *logger.Logger) *Anthropic {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}
	return &Anthropic{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: ratelimit.New(float64(rpm)/60.0, defaultBurst),
		logger:  log,
	}
}

// Close releases resources held by the client.
func (a *Anthropic) Close() {
	a.limiter.Stop()
}

// Configured reports whether an API key is present.
func (a *Anthropic) Configured() bool {
	return a.cfg.APIKey != ""
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete makes a single messages-API call. Missing key, transport
// failure, and non-2xx status all surface as ErrUnavailable; there are no
// retries.
func (a *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	if !a.Configured() {
		return "", ErrUnavailable
	}

	if err := a.limiter.Wait(ctx, "anthropic"); err != nil {
		return "", ErrUnavailable.WithCause(err)
	}

	payload := anthropicRequest{
		Model:       a.cfg.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	a.logger.Debug("backend request", "model", a.cfg.Model, "max_tokens", req.MaxTokens)

	resp, err := a.http.Do(httpReq)
	if err != nil {
		return "", ErrUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrUnavailable.WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.logger.Warn("backend error response", "status", resp.StatusCode)
		return "", ErrUnavailable
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", ErrUnavailable.WithCause(err)
	}
	if len(parsed.Content) == 0 {
		return "", ErrUnavailable
	}
	return parsed.Content[0].Text, nil
}
