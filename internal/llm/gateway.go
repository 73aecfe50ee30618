package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/liliang-cn/askcontract/internal/config"
	"github.com/liliang-cn/askcontract/internal/domain"
	"go.uber.org/zap"
)

// Supported providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config selects the provider and credentials for a single call. It is passed
// explicitly into every call; there is no process-wide mutable provider state.
type Config struct {
	Provider string
	APIKey   string
}

// Gateway sends a prompt to an LLM provider and returns the raw textual
// completion. It performs exactly one attempt per call and never interprets
// the completion's contents.
type Gateway interface {
	Complete(ctx context.Context, prompt string, cfg Config) (string, error)
	Transcribe(ctx context.Context, instruction, imageB64, mimeType string, cfg Config) (string, error)
}

// Client is the HTTP-backed Gateway over the two supported providers.
type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a gateway client.
func NewClient(cfg config.LLMConfig, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Complete sends the prompt to the configured provider and returns the raw
// completion text.
func (c *Client) Complete(ctx context.Context, prompt string, cfg Config) (string, error) {
	if cfg.APIKey == "" {
		return "", &domain.MissingCredentialsError{}
	}

	start := time.Now()
	var (
		text string
		err  error
	)
	switch cfg.Provider {
	case ProviderOpenAI:
		text, err = c.completeOpenAI(ctx, prompt, cfg.APIKey)
	default:
		text, err = c.completeGemini(ctx, prompt, cfg.APIKey)
	}

	if err != nil {
		c.logger.Warn("completion failed",
			zap.String("provider", cfg.Provider),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}

	c.logger.Debug("completion succeeded",
		zap.String("provider", cfg.Provider),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_chars", len(text)),
	)
	return text, nil
}

// Transcribe sends an image with a transcription instruction to a
// vision-capable completion endpoint and returns the transcribed text.
func (c *Client) Transcribe(ctx context.Context, instruction, imageB64, mimeType string, cfg Config) (string, error) {
	if cfg.APIKey == "" {
		return "", &domain.MissingCredentialsError{}
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return c.transcribeOpenAI(ctx, instruction, imageB64, mimeType, cfg.APIKey)
	default:
		return c.transcribeGemini(ctx, instruction, imageB64, mimeType, cfg.APIKey)
	}
}
