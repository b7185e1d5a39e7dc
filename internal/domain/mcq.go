package domain

import (
	"strconv"
	"time"
)

// Request bounds enforced by the validation layer.
const (
	MinQuestionCount = 5
	MaxQuestionCount = 50
	MaxSubjectLength = 50
	MaxToneLength    = 20
)

// GenerationRequest carries everything needed to run one generate/evaluate cycle.
type GenerationRequest struct {
	SourceText     string
	QuestionCount  int
	Subject        string
	Tone           string
	ResponseSchema *ResponseSchema
}

// QuestionRecord is one row of the parsed quiz table.
type QuestionRecord struct {
	Question string `json:"mcq"`
	Options  string `json:"choices"`
	Correct  string `json:"correct"`
}

// QuizResult is the outcome of one successful generation cycle.
type QuizResult struct {
	ID        string           `json:"id"`
	Subject   string           `json:"subject"`
	Tone      string           `json:"tone"`
	Questions []QuestionRecord `json:"questions"`
	Review    string           `json:"review"`
	CreatedAt time.Time        `json:"created_at"`
}

// PipelineContext accumulates the inputs and outputs of the generation chain.
// Quiz is set after the first model call, Review after the second.
type PipelineContext struct {
	Text         string
	Number       int
	Subject      string
	Tone         string
	ResponseJSON string
	Quiz         string
	Review       string
}

// Values exposes the context under the variable names used by the prompts.
func (c *PipelineContext) Values() map[string]string {
	return map[string]string{
		"text":          c.Text,
		"number":        strconv.Itoa(c.Number),
		"subject":       c.Subject,
		"tone":          c.Tone,
		"RESPONSE_JSON": c.ResponseJSON,
		"quiz":          c.Quiz,
		"review":        c.Review,
	}
}
