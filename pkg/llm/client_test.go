package llm

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
)

type stubChatAPI struct {
	responses []openai.ChatCompletionResponse
	errs      []error
	calls     int
	lastReq   openai.ChatCompletionRequest
}

func (s *stubChatAPI) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	idx := s.calls
	s.calls++
	s.lastReq = req
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	var resp openai.ChatCompletionResponse
	if idx < len(s.responses) {
		resp = s.responses[idx]
	}
	return resp, err
}

func newTestClient(api chatAPI, maxRetries int) *Client {
	return &Client{
		api:        api,
		model:      "gpt-4o-mini",
		timeout:    5 * time.Second,
		maxRetries: maxRetries,
		logger:     logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}}),
	}
}

func textResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	api := &stubChatAPI{responses: []openai.ChatCompletionResponse{textResponse("hello")}}
	c := newTestClient(api, 0)

	got, err := c.Complete(context.Background(), Request{System: "sys", User: "user"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
	if len(api.lastReq.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(api.lastReq.Messages))
	}
	if api.lastReq.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected first message to be system role")
	}
}

func TestCompleteOmitsEmptySystemPrompt(t *testing.T) {
	api := &stubChatAPI{responses: []openai.ChatCompletionResponse{textResponse("ok")}}
	c := newTestClient(api, 0)

	if _, err := c.Complete(context.Background(), Request{User: "user"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.lastReq.Messages) != 1 {
		t.Fatalf("expected single user message, got %d", len(api.lastReq.Messages))
	}
}

func TestCompleteRetriesRateLimit(t *testing.T) {
	rateLimited := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}
	api := &stubChatAPI{
		errs:      []error{rateLimited, nil},
		responses: []openai.ChatCompletionResponse{{}, textResponse("recovered")},
	}
	c := newTestClient(api, 2)

	got, err := c.Complete(context.Background(), Request{User: "user"})
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("expected retried response, got %q", got)
	}
	if api.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", api.calls)
	}
}

func TestCompleteDoesNotRetryAuthFailure(t *testing.T) {
	authErr := &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}
	api := &stubChatAPI{errs: []error{authErr, authErr, authErr}}
	c := newTestClient(api, 2)

	_, err := c.Complete(context.Background(), Request{User: "user"})
	if err == nil {
		t.Fatal("expected error")
	}
	if api.calls != 1 {
		t.Fatalf("expected single attempt, got %d", api.calls)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

func TestCompleteMapsEmptyChoices(t *testing.T) {
	api := &stubChatAPI{responses: []openai.ChatCompletionResponse{{}}}
	c := newTestClient(api, 0)

	_, err := c.Complete(context.Background(), Request{User: "user"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if !errors.Is(err, errEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}
