package llm

import (
	"context"

	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangchainLLM invokes any LangchainGo model with a single prompt.
type LangchainLLM struct {
	model  llms.Model
	cfg    config.LLMConfig
	logger *zap.Logger
}

// NewLangchainLLM wraps an already constructed LangchainGo model.
func NewLangchainLLM(model llms.Model, cfg config.LLMConfig, logger *zap.Logger) *LangchainLLM {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LangchainLLM{model: model, cfg: cfg, logger: logger}
}

// Invoke implements domain.LLM.
func (l *LangchainLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := callContext(ctx, l.cfg.Timeout)
	defer cancel()

	opts := []llms.CallOption{llms.WithTemperature(l.cfg.Temperature)}
	if l.cfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(l.cfg.MaxTokens))
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, l.model, prompt, opts...)
	if err != nil {
		return "", wrapCallError(l.cfg.Provider, err, l.logger)
	}
	l.logger.Debug("Raw LLM response received", zap.String("raw_response", completion))
	return completion, nil
}

var _ domain.LLM = (*LangchainLLM)(nil)
