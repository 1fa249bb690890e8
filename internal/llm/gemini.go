package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BartekS5/RCV/pkg/logger"
	"google.golang.org/genai"
)

const (
	defaultTimeout  = 2 * time.Minute
	defaultAttempts = 3
)

// GeminiClient implements Completer against the Gemini API. Every call asks
// for a JSON response body, since both consumers expect structured output.
type GeminiClient struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	maxAttempts int
}

// NewGeminiClient creates a Gemini-backed completer.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		timeout:     defaultTimeout,
		maxAttempts: defaultAttempts,
	}, nil
}

// Complete sends the prompt and returns the model's text. Transient failures
// are retried with exponential backoff; after the final attempt the error is
// wrapped in ErrRemoteCall so callers can mark the affected unit undetermined.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(1<<uint(attempt-2)) * time.Second)
		}

		callCtx := ctx
		cancel := func() {}
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}

		start := time.Now()
		resp, err := c.client.Models.GenerateContent(callCtx, c.model, contents, config)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("%w: %v", ErrRemoteCall, ctx.Err())
			}
			lastErr = err
			logger.Warnf("Gemini call failed (attempt %d/%d): %v", attempt, c.maxAttempts, err)
			continue
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			lastErr = fmt.Errorf("no completion returned")
			logger.Warnf("Gemini returned an empty completion (attempt %d/%d)", attempt, c.maxAttempts)
			continue
		}

		logger.Debugf("Gemini call completed in %v, response length %d", time.Since(start), len(text))
		return text, nil
	}

	return "", fmt.Errorf("%w: %v", ErrRemoteCall, lastErr)
}

// Close releases the underlying client. The genai client holds no
// closable resources, so this is a no-op kept for interface stability.
func (c *GeminiClient) Close() error {
	return nil
}
