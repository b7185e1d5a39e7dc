package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mcq-gen/internal/domain"
	"mcq-gen/internal/dto"
	"mcq-gen/internal/handler"
	"mcq-gen/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateFunc func(ctx context.Context, req *domain.GenerationRequest) (*domain.QuizResult, error)
	GetFunc      func(ctx context.Context, id string) (*domain.QuizResult, error)
	ReportFunc   func(ctx context.Context, id string, w io.Writer) error
}

func (m *MockQuizService) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.QuizResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	panic("MockQuizService.GenerateFunc not implemented")
}
func (m *MockQuizService) Get(ctx context.Context, id string) (*domain.QuizResult, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockQuizService.GetFunc not implemented")
}
func (m *MockQuizService) Report(ctx context.Context, id string, w io.Writer) error {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx, id, w)
	}
	panic("MockQuizService.ReportFunc not implemented")
}

// MockSourceReader
type MockSourceReader struct {
	ReadSourceFunc func(filename string, r io.Reader) (string, error)
}

func (m *MockSourceReader) ReadSource(filename string, r io.Reader) (string, error) {
	if m.ReadSourceFunc != nil {
		return m.ReadSourceFunc(filename, r)
	}
	panic("MockSourceReader.ReadSourceFunc not implemented")
}

const testID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"

func sampleResult() *domain.QuizResult {
	return &domain.QuizResult{
		ID:      testID,
		Subject: "Science",
		Tone:    "Easy",
		Questions: []domain.QuestionRecord{{
			Question: "At what temperature does water boil at sea level?",
			Options:  "A -> 50°C || B -> 100°C || C -> 150°C || D -> 200°C",
			Correct:  "B",
		}},
		Review:    "The question is appropriately simple.",
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func setupApp(svc *MockQuizService, reader *MockSourceReader) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.NewQuizHandler(svc, reader).RegisterRoutes(app.Group("/api"))
	return app
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGenerateQuiz_JSON(t *testing.T) {
	var got *domain.GenerationRequest
	svc := &MockQuizService{GenerateFunc: func(ctx context.Context, req *domain.GenerationRequest) (*domain.QuizResult, error) {
		got = req
		return sampleResult(), nil
	}}
	app := setupApp(svc, &MockSourceReader{})

	body := `{"text":"Water boils at 100°C at sea level.","count":5,"subject":"Science","tone":"Easy"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[dto.QuizResponse](t, resp)
	assert.Equal(t, testID, out.ID)
	require.Len(t, out.Questions, 1)
	assert.Equal(t, 1, out.Questions[0].Number)
	assert.Equal(t, "A -> 50°C || B -> 100°C || C -> 150°C || D -> 200°C", out.Questions[0].Choices)
	assert.Equal(t, "B", out.Questions[0].Correct)
	assert.Equal(t, "The question is appropriately simple.", out.Review)
	assert.True(t, strings.HasSuffix(out.ReportURL, "/api/quizzes/"+testID+"/report"))

	require.NotNil(t, got)
	assert.Equal(t, 5, got.QuestionCount)
	assert.Equal(t, "Water boils at 100°C at sea level.", got.SourceText)
}

func TestGenerateQuiz_Multipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("raw upload"))
	require.NoError(t, w.WriteField("count", "10"))
	require.NoError(t, w.WriteField("subject", "Biology"))
	require.NoError(t, w.WriteField("tone", "Simple"))
	require.NoError(t, w.Close())

	reader := &MockSourceReader{ReadSourceFunc: func(filename string, r io.Reader) (string, error) {
		data, _ := io.ReadAll(r)
		assert.Equal(t, "notes.txt", filename)
		assert.Equal(t, "raw upload", string(data))
		return "Cells are the basic unit of life.", nil
	}}
	svc := &MockQuizService{GenerateFunc: func(ctx context.Context, req *domain.GenerationRequest) (*domain.QuizResult, error) {
		assert.Equal(t, "Cells are the basic unit of life.", req.SourceText)
		assert.Equal(t, 10, req.QuestionCount)
		assert.Equal(t, "Biology", req.Subject)
		return sampleResult(), nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/quizzes", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := setupApp(svc, reader).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGenerateQuiz_UnsupportedUpload(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, _ := w.CreateFormFile("file", "slides.docx")
	_, _ = fw.Write([]byte("x"))
	_ = w.WriteField("count", "5")
	_ = w.Close()

	reader := &MockSourceReader{ReadSourceFunc: func(string, io.Reader) (string, error) {
		return "", domain.NewUnsupportedInputError("Unsupported file format. Please upload a PDF or TXT file.")
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := setupApp(&MockQuizService{}, reader).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[middleware.ErrorResponse](t, resp)
	assert.Equal(t, "UNSUPPORTED_INPUT", out.Code)
}

func TestGenerateQuiz_ValidationFailure(t *testing.T) {
	app := setupApp(&MockQuizService{}, &MockSourceReader{})

	req := httptest.NewRequest(http.MethodPost, "/api/quizzes",
		strings.NewReader(`{"text":"t","count":4,"subject":"Science","tone":"Easy"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decode[middleware.ValidationErrorResponse](t, resp)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "count", out.Errors[0].Field)
}

func TestGenerateQuiz_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"parse", domain.NewParseError("unexpected end of JSON input", "{").AsDomainError(), http.StatusUnprocessableEntity},
		{"llm", domain.NewLLMServiceError(errors.New("quota")), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockQuizService{GenerateFunc: func(context.Context, *domain.GenerationRequest) (*domain.QuizResult, error) {
				return nil, tt.err
			}}
			req := httptest.NewRequest(http.MethodPost, "/api/quizzes",
				strings.NewReader(`{"text":"t","count":5,"subject":"Science","tone":"Easy"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := setupApp(svc, &MockSourceReader{}).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetQuiz(t *testing.T) {
	svc := &MockQuizService{GetFunc: func(ctx context.Context, id string) (*domain.QuizResult, error) {
		if id == testID {
			return sampleResult(), nil
		}
		return nil, domain.NewResultNotFoundError(id)
	}}
	app := setupApp(svc, &MockSourceReader{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/"+testID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Science", decode[dto.QuizResponse](t, resp).Subject)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/01HGZ8VNRYXS8QKNJV5GRWPWDR", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetReport(t *testing.T) {
	svc := &MockQuizService{ReportFunc: func(ctx context.Context, id string, w io.Writer) error {
		_, err := io.WriteString(w, "%PDF-1.3 fake")
		return err
	}}
	resp, err := setupApp(svc, &MockSourceReader{}).Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/"+testID+"/report", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "quiz-"+testID+".pdf")
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.3 fake", string(data))
}
