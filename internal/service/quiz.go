package service

import (
	"context"
	"errors"
	"io"
	"time"

	"mcq-gen/internal/domain"
	"mcq-gen/internal/logger"
	"mcq-gen/internal/parser"
	"mcq-gen/internal/prompt"
	"mcq-gen/internal/util"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz generation operations
type QuizService interface {
	Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.QuizResult, error)
	Get(ctx context.Context, id string) (*domain.QuizResult, error)
	Report(ctx context.Context, id string, w io.Writer) error
}

// quizService implements QuizService
type quizService struct {
	pipeline *Pipeline
	parser   *parser.Parser
	store    domain.ResultStore
	renderer domain.ReportRenderer
	schema   *domain.ResponseSchema
	now      func() time.Time
}

// NewQuizService creates a new instance of quizService. schema is used for
// requests that do not carry their own example schema.
func NewQuizService(
	pipeline *Pipeline,
	p *parser.Parser,
	store domain.ResultStore,
	renderer domain.ReportRenderer,
	schema *domain.ResponseSchema,
) QuizService {
	if p == nil {
		p = parser.New()
	}
	if schema == nil {
		schema = domain.DefaultResponseSchema()
	}
	return &quizService{
		pipeline: pipeline,
		parser:   p,
		store:    store,
		renderer: renderer,
		schema:   schema,
		now:      time.Now,
	}
}

// Generate runs one generate/review cycle, parses the quiz and keeps the
// result for later retrieval. Nothing is stored unless every step succeeds.
func (s *quizService) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.QuizResult, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("generation request is required")
	}

	schema := req.ResponseSchema
	if schema == nil {
		schema = s.schema
	}
	responseJSON, err := prompt.SchemaJSON(schema)
	if err != nil {
		return nil, err
	}

	pc, err := s.pipeline.Run(ctx, domain.PipelineContext{
		Text:         req.SourceText,
		Number:       req.QuestionCount,
		Subject:      req.Subject,
		Tone:         req.Tone,
		ResponseJSON: responseJSON,
	})
	if err != nil {
		return nil, err
	}

	records, err := s.parser.Parse(pc.Quiz)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			logger.Get().Warn("Generated quiz could not be parsed",
				zap.String("reason", parseErr.Reason),
				zap.String("preview", parseErr.Preview))
			return nil, parseErr.AsDomainError()
		}
		return nil, domain.NewInternalError("failed to parse generated quiz", err)
	}

	result := &domain.QuizResult{
		ID:        util.NewULID(),
		Subject:   req.Subject,
		Tone:      req.Tone,
		Questions: records,
		Review:    pc.Review,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Put(ctx, result); err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz generated",
		zap.String("id", result.ID),
		zap.Int("requested", req.QuestionCount),
		zap.Int("parsed", len(records)))
	return result, nil
}

// Get returns a previously generated result.
func (s *quizService) Get(ctx context.Context, id string) (*domain.QuizResult, error) {
	return s.store.Get(ctx, id)
}

// Report renders a stored result as a document into w.
func (s *quizService) Report(ctx context.Context, id string, w io.Writer) error {
	if s.renderer == nil {
		return domain.NewInternalError("report rendering is not configured", nil)
	}
	result, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(ctx, result, w); err != nil {
		return domain.NewInternalError("failed to render quiz report", err)
	}
	return nil
}
