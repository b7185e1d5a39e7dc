package handler

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"mcq-gen/internal/domain"
	"mcq-gen/internal/dto"
	"mcq-gen/internal/logger"
	"mcq-gen/internal/middleware"
	"mcq-gen/internal/service"
	"mcq-gen/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	reader    domain.SourceReader
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, reader domain.SourceReader) *QuizHandler {
	return &QuizHandler{
		service:   service,
		reader:    reader,
		validator: validation.NewValidator(),
	}
}

// RegisterRoutes mounts the quiz endpoints on router.
func (h *QuizHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/quizzes", h.GenerateQuiz)
	vm := middleware.NewValidationMiddleware()
	router.Get("/quizzes/:id", vm.ValidateResultID(), h.GetQuiz)
	router.Get("/quizzes/:id/report", vm.ValidateResultID(), h.GetReport)
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates multiple choice questions from an uploaded .pdf/.txt file or raw text, then reviews them
// @Tags quiz
// @Accept json,mpfd
// @Produce json
// @Param request body dto.GenerateQuizRequest false "Raw text request"
// @Param file formData file false "Source document (.pdf or .txt)"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, err := h.bindGenerationRequest(c)
	if err != nil {
		return err
	}

	if errs := h.validator.ValidateGenerationRequest(req); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Generate(c.UserContext(), req)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.String("subject", req.Subject),
			zap.Int("count", req.QuestionCount),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(result, reportURL(c, result.ID)))
}

// GetQuiz godoc
// @Summary Get a generated quiz
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.ValidatedIDKey).(string)

	result, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(result, reportURL(c, result.ID)))
}

// GetReport godoc
// @Summary Download a quiz as PDF
// @Tags quiz
// @Produce application/pdf
// @Param id path string true "Quiz ID"
// @Success 200 {file} file
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/report [get]
func (h *QuizHandler) GetReport(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.ValidatedIDKey).(string)

	var buf bytes.Buffer
	if err := h.service.Report(c.UserContext(), id, &buf); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="quiz-%s.pdf"`, id))
	return c.Send(buf.Bytes())
}

// bindGenerationRequest reads either a multipart upload or a JSON body.
func (h *QuizHandler) bindGenerationRequest(c *fiber.Ctx) (*domain.GenerationRequest, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var body dto.GenerateQuizRequest
		if err := c.BodyParser(&body); err != nil {
			return nil, domain.NewInvalidInputError("request body must be JSON or multipart/form-data")
		}
		return body.ToGenerationRequest(), nil
	}

	req := &domain.GenerationRequest{
		Subject: c.FormValue("subject"),
		Tone:    c.FormValue("tone"),
	}
	if raw := c.FormValue("count"); raw != "" {
		count, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("count", raw)}
		}
		req.QuestionCount = count
	}

	fh, err := c.FormFile("file")
	if err != nil {
		req.SourceText = c.FormValue("text")
		return req, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, domain.NewInternalError("failed to open uploaded file", err)
	}
	defer f.Close()

	text, err := h.reader.ReadSource(fh.Filename, f)
	if err != nil {
		return nil, err
	}
	req.SourceText = text
	return req, nil
}

func reportURL(c *fiber.Ctx, id string) string {
	return c.BaseURL() + "/api/quizzes/" + id + "/report"
}
