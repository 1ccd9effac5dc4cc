// Package openai implements the completion capability on the OpenAI chat
// completions API or any compatible endpoint.
package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/newsdesk"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// Client is the subset of *openai.Client used by Completer.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Ensure Completer implements newsdesk.Completer at compile time.
var _ newsdesk.Completer = (*Completer)(nil)

// Completer implements newsdesk.Completer using chat completions.
type Completer struct {
	client Client
	model  string
}

// NewCompleter creates a new Completer. An empty model uses DefaultModel.
func NewCompleter(client Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// NewClient creates an *openai.Client for apiKey. A non-empty baseURL
// points it at a compatible endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

// Complete sends req as a chat completion and returns the first choice.
func (c *Completer) Complete(ctx context.Context, req newsdesk.CompletionRequest) (string, error) {
	if req.UserPrompt == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "prompt required")
	}
	if c.client == nil {
		return "", newsdesk.Errorf(newsdesk.EUNAVAILABLE, "openai client not configured")
	}

	resp, err := c.client.CreateChatCompletion(ctx, BuildRequest(c.model, req))
	if err != nil {
		return "", ClassifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", newsdesk.Errorf(newsdesk.EINTERNAL, "openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildRequest returns the chat completion request for req.
func BuildRequest(model string, req newsdesk.CompletionRequest) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})

	out := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		N:           1,
	}
	if req.JSON {
		out.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return out
}

// ClassifyError converts a go-openai error into an application error.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newsdesk.Errorf(newsdesk.ETIMEOUT, "openai: request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newsdesk.Errorf(newsdesk.StatusErrorCode(apiErr.HTTPStatusCode), "openai: %d %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newsdesk.Errorf(newsdesk.StatusErrorCode(reqErr.HTTPStatusCode), "openai: request failed with status %d", reqErr.HTTPStatusCode)
	}
	return newsdesk.Errorf(newsdesk.EUNAVAILABLE, "openai: %v", err)
}
