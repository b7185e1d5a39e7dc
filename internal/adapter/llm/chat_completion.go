package llm

import (
	"context"
	"fmt"
	"strings"

	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ChatCompletionLLM talks to any OpenAI-compatible chat completions endpoint.
// Groq is served this way.
type ChatCompletionLLM struct {
	client *openai.Client
	cfg    config.LLMConfig
	logger *zap.Logger
}

// NewChatCompletionLLM creates a client for cfg.BaseURL.
func NewChatCompletionLLM(cfg config.LLMConfig, logger *zap.Logger) (*ChatCompletionLLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key cannot be empty", cfg.Provider)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &ChatCompletionLLM{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Invoke implements domain.LLM.
func (c *ChatCompletionLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := callContext(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", wrapCallError(c.cfg.Provider, err, c.logger)
	}
	if len(resp.Choices) == 0 {
		return "", wrapCallError(c.cfg.Provider, fmt.Errorf("response contained no choices"), c.logger)
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("Raw LLM response received",
		zap.String("raw_response", content),
		zap.Int("total_tokens", resp.Usage.TotalTokens))
	return content, nil
}

var _ domain.LLM = (*ChatCompletionLLM)(nil)
