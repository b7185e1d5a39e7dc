package service

import (
	"context"
	"strings"

	"mcq-gen/internal/domain"
	"mcq-gen/internal/logger"
	"mcq-gen/internal/prompt"

	"go.uber.org/zap"
)

// Pipeline runs the two model calls of one generation cycle: the first
// writes the quiz, the second reviews it.
type Pipeline struct {
	llm      domain.LLM
	composer *prompt.Composer
}

// NewPipeline creates a Pipeline over llm.
func NewPipeline(llm domain.LLM, composer *prompt.Composer) *Pipeline {
	if composer == nil {
		composer = prompt.NewComposer()
	}
	return &Pipeline{llm: llm, composer: composer}
}

// Run fills in Quiz and Review on a copy of in. If the review call fails the
// returned context still carries the quiz text alongside the error.
func (p *Pipeline) Run(ctx context.Context, in domain.PipelineContext) (*domain.PipelineContext, error) {
	out := in
	log := logger.Get().With(zap.String("subject", in.Subject), zap.Int("number", in.Number))

	generatePrompt, err := p.composer.Generate(&out)
	if err != nil {
		return nil, err
	}
	log.Info("Requesting quiz generation")
	quiz, err := p.llm.Invoke(ctx, generatePrompt)
	if err != nil {
		log.Error("Quiz generation call failed", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}
	log.Debug("Quiz generation response", zap.String("quiz", quiz))
	out.Quiz = quiz
	if strings.TrimSpace(quiz) == "" {
		return &out, domain.NewParseError("model returned an empty response", quiz).AsDomainError()
	}

	evaluatePrompt, err := p.composer.Evaluate(out.Subject, out.Quiz)
	if err != nil {
		return &out, err
	}
	log.Info("Requesting quiz review")
	review, err := p.llm.Invoke(ctx, evaluatePrompt)
	if err != nil {
		log.Error("Quiz review call failed", zap.Error(err))
		return &out, domain.NewLLMServiceError(err)
	}
	out.Review = review
	return &out, nil
}
