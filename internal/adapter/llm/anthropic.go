package llm

import (
	"context"
	"fmt"
	"strings"

	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// AnthropicLLM invokes the Anthropic Messages API.
type AnthropicLLM struct {
	client *anthropic.Client
	cfg    config.LLMConfig
	logger *zap.Logger
}

// NewAnthropicLLM creates an Anthropic client. Retries are disabled; a failed
// call is reported to the caller as is.
func NewAnthropicLLM(cfg config.LLMConfig, logger *zap.Logger) (*AnthropicLLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicLLM{client: &client, cfg: cfg, logger: logger}, nil
}

// Invoke implements domain.LLM.
func (a *AnthropicLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := callContext(ctx, a.cfg.Timeout)
	defer cancel()

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.cfg.Model),
		MaxTokens:   int64(a.cfg.MaxTokens),
		Temperature: anthropic.Float(a.cfg.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", wrapCallError(a.cfg.Provider, err, a.logger)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	a.logger.Debug("Raw LLM response received",
		zap.String("raw_response", sb.String()),
		zap.String("stop_reason", string(msg.StopReason)))
	return sb.String(), nil
}

var _ domain.LLM = (*AnthropicLLM)(nil)
