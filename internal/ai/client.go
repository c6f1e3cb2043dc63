package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// GenerationError reports a generation request that failed for good,
// either by exhausting retries or by hitting a non-transient status.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("insight generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

var errEmptyPayload = errors.New("ai: empty generation payload")

// Client issues generation requests against the chat completions endpoint.
// Each call is stateless; retry behavior is governed by the policy.
type Client struct {
	client *openai.Client
	model  string
	policy RetryPolicy
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
	Policy  *RetryPolicy
}

func New(cfg Config) *Client {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	if cfg.Model == "" {
		panic("ai: model must be specified")
	}
	policy := DefaultRetryPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	return &Client{client: c, model: cfg.Model, policy: policy}
}

// Generate runs the prompt through the model, retrying rate limits and
// transport failures on the backoff schedule. Non-429 API statuses fail
// immediately with the response detail; the last attempt's failure is
// surfaced verbatim inside a GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.policy.Sleep(ctx, c.policy.Delay(attempt-1)); err != nil {
				return "", err
			}
		}
		text, err := c.create(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if !retryable(err) {
			return "", &GenerationError{Err: err}
		}
		lastErr = err
		slog.Warn("ai: generation attempt failed", "attempt", attempt+1, "err", err)
	}
	return "", &GenerationError{Err: lastErr}
}

func (c *Client) create(ctx context.Context, prompt string) (string, error) {
	// Guard against callers without a deadline.
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	// Unwrap the envelope defensively; a missing payload is a failure.
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errEmptyPayload
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// retryable: 429 and transport-level failures go back through the loop;
// any other HTTP status is treated as non-transient. Malformed payloads
// fall through to the generic loop as well.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return true
}
