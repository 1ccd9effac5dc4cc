// Package gemini implements the completion capability on Google Gemini.
package gemini

import (
	"context"
	"errors"

	"github.com/fwojciec/newsdesk"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements newsdesk.Completer at compile time.
var _ newsdesk.Completer = (*Completer)(nil)

// Completer implements newsdesk.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model uses DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete sends req to Gemini and returns the reply text.
func (c *Completer) Complete(ctx context.Context, req newsdesk.CompletionRequest) (string, error) {
	if req.UserPrompt == "" {
		return "", newsdesk.Errorf(newsdesk.EINVALID, "prompt required")
	}
	if c.client == nil {
		return "", newsdesk.Errorf(newsdesk.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: req.UserPrompt}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return "", ClassifyError(err)
	}
	if result == nil {
		return "", newsdesk.Errorf(newsdesk.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for req.
func BuildConfig(req newsdesk.CompletionRequest) *genai.GenerateContentConfig {
	temp := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}

// ClassifyError converts a Gemini client error into an application error.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newsdesk.Errorf(newsdesk.ETIMEOUT, "gemini: request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiError(apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiError(apiErrPtr.Code, apiErrPtr.Message)
	}
	return newsdesk.Errorf(newsdesk.EUNAVAILABLE, "gemini: %v", err)
}

func apiError(status int, message string) error {
	return newsdesk.Errorf(newsdesk.StatusErrorCode(status), "gemini: %d %s", status, message)
}
