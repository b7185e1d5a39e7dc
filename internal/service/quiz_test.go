package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"mcq-gen/internal/adapter"
	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"
	"mcq-gen/internal/logger"
	"mcq-gen/internal/parser"
	"mcq-gen/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const boilingQuiz = `{"1": {"mcq": "At what temperature does water boil at sea level?", "options": {"A":"50°C","B":"100°C","C":"150°C","D":"200°C"}, "correct":"B"}}`

// TestMain initialises the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func boilingRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		SourceText:    "Water boils at 100°C at sea level.",
		QuestionCount: 1,
		Subject:       "Science",
		Tone:          "Easy",
	}
}

func newTestQuizService(llm domain.LLM, store domain.ResultStore, renderer domain.ReportRenderer) *quizService {
	svc := NewQuizService(NewPipeline(llm, nil), parser.New(), store, renderer, nil).(*quizService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestQuizService_GenerateEndToEnd(t *testing.T) {
	schemaJSON, err := prompt.SchemaJSON(domain.DefaultResponseSchema())
	require.NoError(t, err)

	llm := new(MockLLM)
	llm.On("Invoke", mock.Anything, mock.MatchedBy(func(p string) bool {
		return isGeneratePrompt(p) &&
			strings.Contains(p, "Text:Water boils at 100°C at sea level.") &&
			strings.Contains(p, "a quiz of 1 multiple choice questions for Science students in Easy tone") &&
			strings.Contains(p, schemaJSON)
	})).Return(boilingQuiz, nil).Once()
	llm.On("Invoke", mock.Anything, mock.MatchedBy(func(p string) bool {
		return isEvaluatePrompt(p) &&
			strings.Contains(p, "Multiple Choice Quiz for Science students") &&
			strings.Contains(p, "Quiz_MCQs:\n"+boilingQuiz)
	})).Return("The question is appropriately simple.", nil).Once()
	store := NewResultStore(adapter.NewMemoryCacheAdapter(), time.Hour)
	svc := newTestQuizService(llm, store, nil)

	result, err := svc.Generate(context.Background(), boilingRequest())
	require.NoError(t, err)

	require.Len(t, result.Questions, 1)
	assert.Equal(t, domain.QuestionRecord{
		Question: "At what temperature does water boil at sea level?",
		Options:  "A -> 50°C || B -> 100°C || C -> 150°C || D -> 200°C",
		Correct:  "B",
	}, result.Questions[0])
	assert.Equal(t, "The question is appropriately simple.", result.Review)
	assert.Equal(t, "Science", result.Subject)
	assert.Len(t, result.ID, 26)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), result.CreatedAt)

	stored, err := svc.Get(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, result, stored)
	llm.AssertExpectations(t)
}

func TestQuizService_GenerateUsesRequestSchema(t *testing.T) {
	schema := &domain.ResponseSchema{Questions: []domain.SchemaQuestion{{
		Key: "1", MCQ: "custom question slot", Correct: "x",
		Options: []domain.SchemaOption{{Label: "x", Text: "only choice"}},
	}}}
	llm := new(MockLLM)
	llm.On("Invoke", mock.Anything, mock.MatchedBy(func(p string) bool {
		return isGeneratePrompt(p) && strings.Contains(p, `"mcq": "custom question slot"`)
	})).Return(boilingQuiz, nil).Once()
	llm.On("Invoke", mock.Anything, mock.MatchedBy(isEvaluatePrompt)).Return("ok", nil).Once()

	req := boilingRequest()
	req.ResponseSchema = schema
	_, err := newTestQuizService(llm, NewResultStore(adapter.NewMemoryCacheAdapter(), time.Hour), nil).Generate(context.Background(), req)
	require.NoError(t, err)
	llm.AssertExpectations(t)
}

func TestQuizService_GenerateParseFailure(t *testing.T) {
	llm := new(MockLLM)
	llm.On("Invoke", mock.Anything, mock.MatchedBy(isGeneratePrompt)).Return("Sorry, I cannot produce a quiz for that text.", nil).Once()
	llm.On("Invoke", mock.Anything, mock.MatchedBy(isEvaluatePrompt)).Return("n/a", nil).Once()
	cache := new(MockCache)
	svc := newTestQuizService(llm, NewResultStore(cache, time.Hour), nil)

	result, err := svc.Generate(context.Background(), boilingRequest())
	assert.Nil(t, result)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrParse, domainErr.Code)
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Preview, "Sorry, I cannot")
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizService_GenerateLLMFailure(t *testing.T) {
	cause := errors.New("503 from provider")
	llm := new(MockLLM)
	llm.On("Invoke", mock.Anything, mock.Anything).Return("", cause)
	cache := new(MockCache)

	_, err := newTestQuizService(llm, NewResultStore(cache, time.Hour), nil).Generate(context.Background(), boilingRequest())
	assert.ErrorIs(t, err, cause)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizService_GenerateStoreFailure(t *testing.T) {
	llm := new(MockLLM)
	llm.On("Invoke", mock.Anything, mock.MatchedBy(isGeneratePrompt)).Return(boilingQuiz, nil)
	llm.On("Invoke", mock.Anything, mock.MatchedBy(isEvaluatePrompt)).Return("fine", nil)
	cache := new(MockCache)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(errors.New("connection refused"))

	result, err := newTestQuizService(llm, NewResultStore(cache, time.Hour), nil).Generate(context.Background(), boilingRequest())
	assert.Nil(t, result)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrInternal, domainErr.Code)
}

func TestQuizService_GenerateNilRequest(t *testing.T) {
	_, err := newTestQuizService(new(MockLLM), nil, nil).Generate(context.Background(), nil)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrInvalidInput, domainErr.Code)
}

func TestQuizService_Report(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore(adapter.NewMemoryCacheAdapter(), time.Hour)
	stored := &domain.QuizResult{ID: "01HGZ8VNRYXS8QKNJV5GRWPWDQ", Subject: "Science"}
	require.NoError(t, store.Put(ctx, stored))

	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(r *domain.QuizResult) bool { return r.ID == stored.ID }), mock.Anything).Return(nil)
	svc := newTestQuizService(new(MockLLM), store, renderer)

	var buf bytes.Buffer
	require.NoError(t, svc.Report(ctx, stored.ID, &buf))
	assert.Equal(t, "%PDF-1.3 01HGZ8VNRYXS8QKNJV5GRWPWDQ", buf.String())

	err := svc.Report(ctx, "01HGZ8VNRYXS8QKNJV5GRWPWDR", &buf)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNotFound, domainErr.Code)
}

func TestQuizService_ReportRenderFailure(t *testing.T) {
	ctx := context.Background()
	store := NewResultStore(adapter.NewMemoryCacheAdapter(), time.Hour)
	require.NoError(t, store.Put(ctx, &domain.QuizResult{ID: "id-1"}))
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("font not found"))

	err := newTestQuizService(new(MockLLM), store, renderer).Report(ctx, "id-1", &bytes.Buffer{})
	assert.ErrorContains(t, err, "font not found")
}
