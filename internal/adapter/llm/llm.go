// Package llm adapts model providers to domain.LLM.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	defaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultTimeout       = 90 * time.Second
)

// New builds the domain.LLM for the configured provider.
func New(cfg config.LLMConfig, logger *zap.Logger) (domain.LLM, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Initializing LLM client",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model))

	switch cfg.Provider {
	case ProviderGroq:
		if cfg.BaseURL == "" {
			cfg.BaseURL = defaultGroqBaseURL
		}
		return NewChatCompletionLLM(cfg, logger)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []lcopenai.Option{lcopenai.WithToken(cfg.APIKey), lcopenai.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, lcopenai.WithBaseURL(cfg.BaseURL))
		}
		model, err := lcopenai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
		}
		return NewLangchainLLM(model, cfg, logger), nil
	case ProviderOllama:
		serverURL := cfg.BaseURL
		if serverURL == "" {
			serverURL = defaultOllamaBaseURL
		}
		model, err := ollama.New(
			ollama.WithServerURL(serverURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return NewLangchainLLM(model, cfg, logger), nil
	case ProviderAnthropic:
		return NewAnthropicLLM(cfg, logger)
	case ProviderGemini:
		return NewGeminiLLM(context.Background(), cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}

// callContext bounds one model call by the configured timeout.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// wrapCallError labels provider failures, keeping the cause for errors.Is/As.
func wrapCallError(provider string, err error, logger *zap.Logger) error {
	if errors.Is(err, context.DeadlineExceeded) {
		logger.Error("LLM request timed out", zap.String("provider", provider), zap.Error(err))
		return fmt.Errorf("%s request timed out: %w", provider, err)
	}
	logger.Error("Failed to get response from LLM", zap.String("provider", provider), zap.Error(err))
	return fmt.Errorf("%s call failed: %w", provider, err)
}
