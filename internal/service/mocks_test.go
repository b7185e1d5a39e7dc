package service

import (
	"context"
	"io"
	"strings"
	"time"

	"mcq-gen/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockLLM ---
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockRenderer ---
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, result *domain.QuizResult, w io.Writer) error {
	args := m.Called(ctx, result, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "%PDF-1.3 "+result.ID)
	return err
}

// isGeneratePrompt and isEvaluatePrompt tell the two pipeline calls apart.
func isGeneratePrompt(p string) bool { return strings.Contains(p, "expert MCQ maker") }
func isEvaluatePrompt(p string) bool { return strings.Contains(p, "Quiz_MCQs:") }
