package llm

import (
	"context"
	"fmt"
	"strings"

	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiLLM invokes a Gemini generative model.
type GeminiLLM struct {
	client *genai.Client
	model  *genai.GenerativeModel
	cfg    config.LLMConfig
	logger *zap.Logger
}

// NewGeminiLLM creates a Gemini client. Call Close when done.
func NewGeminiLLM(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiLLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(cfg.Temperature))
	if cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(cfg.MaxTokens))
	}
	return &GeminiLLM{client: client, model: model, cfg: cfg, logger: logger}, nil
}

// Invoke implements domain.LLM.
func (g *GeminiLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := callContext(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", wrapCallError(g.cfg.Provider, err, g.logger)
	}
	text, err := candidateText(resp)
	if err != nil {
		return "", wrapCallError(g.cfg.Provider, err, g.logger)
	}
	g.logger.Debug("Raw LLM response received", zap.String("raw_response", text))
	return text, nil
}

// Close releases the underlying connection.
func (g *GeminiLLM) Close() error {
	return g.client.Close()
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("response contained no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

var _ domain.LLM = (*GeminiLLM)(nil)
