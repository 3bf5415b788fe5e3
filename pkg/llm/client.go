package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"

	"github.com/leafline/leafline-backend/pkg/config"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
)

var (
	errAPIKeyRequired = errors.New("openai api key is required")
	errLoggerRequired = errors.New("llm logger is required")
	errEmptyResponse  = errors.New("completion returned no choices")
)

const initialBackoff = 500 * time.Millisecond

// Request describes one chat completion round-trip.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Completer is the surface the design generators depend on.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps the OpenAI chat API with per-request timeouts, transient
// retries, logging, and error mapping.
type Client struct {
	api        chatAPI
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *logger.Logger
}

// NewClient validates the credentials and builds the completion client.
func NewClient(ctx context.Context, cfg config.LLMConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	c := &Client{
		api:        openai.NewClient(apiKey),
		model:      cfg.Model,
		timeout:    cfg.RequestTimeout,
		maxRetries: cfg.MaxRetries,
		logger:     logg,
	}

	logg.Info(ctx, "llm client initialized")
	return c, nil
}

// Model reports the configured completion model.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Complete runs one chat completion and returns the first choice's text.
// Rate-limit and upstream 5xx responses are retried with exponential backoff.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    buildMessages(req),
	}

	c.log(ctx, "request", map[string]any{"model": c.model, "max_tokens": req.MaxTokens})
	start := time.Now()

	backoff := retry.WithMaxRetries(uint64(c.maxRetries), retry.NewExponential(initialBackoff))

	var content string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			if isTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		if len(resp.Choices) == 0 {
			return errEmptyResponse
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		c.log(ctx, "error", map[string]any{"error": err.Error()})
		return "", mapCompletionError(err)
	}

	c.log(ctx, "response", map[string]any{
		"duration_ms": time.Since(start).Milliseconds(),
		"chars":       len(content),
	})
	return content, nil
}

func buildMessages(req Request) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})
	return messages
}

func isTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return false
}

func mapCompletionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "completion request rejected")
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return pkgerrors.Wrap(pkgerrors.CodeRateLimit, err, "completion rate limited")
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "completion request failed")
}

func (c *Client) log(ctx context.Context, phase string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{"phase": phase}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Error(ctx, "llm completion", errors.New(fmt.Sprint(fields["error"])))
	default:
		c.logger.Info(ctx, fmt.Sprintf("llm %s", phase))
	}
}
