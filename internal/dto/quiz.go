package dto

import (
	"time"

	"mcq-gen/internal/domain"

	"github.com/samber/lo"
)

// GenerateQuizRequest is the JSON body of a quiz generation request.
// @Description Request body for generating a quiz from raw text
type GenerateQuizRequest struct {
	Text    string `json:"text"`
	Count   int    `json:"count"`
	Subject string `json:"subject"`
	Tone    string `json:"tone"`
}

// QuestionResponse is one row of the quiz table.
type QuestionResponse struct {
	Number  int    `json:"number"`
	MCQ     string `json:"mcq"`
	Choices string `json:"choices"`
	Correct string `json:"correct"`
}

// QuizResponse represents a generated quiz in the API response
// @Description Generated quiz with its review
type QuizResponse struct {
	ID        string             `json:"id"`
	Subject   string             `json:"subject"`
	Tone      string             `json:"tone"`
	Questions []QuestionResponse `json:"questions"`
	Review    string             `json:"review"`
	CreatedAt time.Time          `json:"created_at"`
	ReportURL string             `json:"report_url"`
}

// HealthResponse reports liveness and the state of the result store.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// ToGenerationRequest maps the JSON body onto a domain request.
func (r GenerateQuizRequest) ToGenerationRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		SourceText:    r.Text,
		QuestionCount: r.Count,
		Subject:       r.Subject,
		Tone:          r.Tone,
	}
}

// NewQuizResponse converts a domain result into its API representation.
func NewQuizResponse(result *domain.QuizResult, reportURL string) QuizResponse {
	return QuizResponse{
		ID:      result.ID,
		Subject: result.Subject,
		Tone:    result.Tone,
		Questions: lo.Map(result.Questions, func(q domain.QuestionRecord, i int) QuestionResponse {
			return QuestionResponse{Number: i + 1, MCQ: q.Question, Choices: q.Options, Correct: q.Correct}
		}),
		Review:    result.Review,
		CreatedAt: result.CreatedAt,
		ReportURL: reportURL,
	}
}
