package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"

	"readmellm/internal/models"
)

// OllamaClient generates through a local Ollama daemon. The daemon
// address comes from OLLAMA_HOST, matching the api package defaults.
type OllamaClient struct {
	client *api.Client
	model  string
	logger *zap.Logger
}

// NewOllamaClient creates an Ollama-backed client
func NewOllamaClient(model string, logger *zap.Logger) (*OllamaClient, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaClient{client: client, model: model, logger: logger}, nil
}

// Model returns the configured model name
func (c *OllamaClient) Model() string { return c.model }

// Generate issues one non-streaming generate call
func (c *OllamaClient) Generate(ctx context.Context, req *models.PromptRequest) (*models.ModelResponse, error) {
	stream := false
	genReq := &api.GenerateRequest{
		Model:  c.model,
		Prompt: req.Text,
		Stream: &stream,
	}

	start := time.Now()
	var text strings.Builder
	var final api.GenerateResponse
	err := c.client.Generate(ctx, genReq, func(resp api.GenerateResponse) error {
		text.WriteString(resp.Response)
		final = resp
		return nil
	})
	if err != nil {
		return nil, classifyOllama(err)
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrContent)
	}

	c.logger.Debug("ollama call completed",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("prompt_tokens", final.Metrics.PromptEvalCount),
		zap.Int("output_tokens", final.Metrics.EvalCount))

	finish := models.FinishComplete
	if final.DoneReason == "length" {
		finish = models.FinishTruncated
	}

	return &models.ModelResponse{
		Text:     text.String(),
		Finish:   finish,
		Provider: "ollama",
		Model:    c.model,
		Usage: models.TokenUsage{
			PromptTokens: final.Metrics.PromptEvalCount,
			OutputTokens: final.Metrics.EvalCount,
		},
	}, nil
}

func classifyOllama(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500:
			return fmt.Errorf("%w: %v", ErrTransient, err)
		default:
			return fmt.Errorf("%w: %v", ErrRequest, err)
		}
	}
	// Anything without an HTTP status is a connection-level fault.
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
