package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"readmellm/internal/config"
	"readmellm/internal/models"
)

// Client is a generative model backend. Generate issues one request
// and classifies any failure into the taxonomy in errors.go; it does
// not retry. Cancellation and deadlines propagate through ctx.
type Client interface {
	Generate(ctx context.Context, req *models.PromptRequest) (*models.ModelResponse, error)
	Model() string
}

// New builds the provider selected by the configuration
func New(cfg *config.Config, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(cfg.APIKey, cfg.Model, cfg.Timeout, logger), nil
	case config.ProviderOllama:
		return NewOllamaClient(cfg.Model, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
