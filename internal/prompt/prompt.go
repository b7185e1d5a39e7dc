package prompt

import (
	"fmt"
	"strings"

	"mcq-gen/internal/domain"

	"github.com/samber/lo"
	"github.com/tmc/langchaingo/prompts"
)

const generateTemplate = `
Text:{text}
You are an expert MCQ maker. Given the above text, it is your job to create
a quiz of {number} multiple choice questions for {subject} students in {tone} tone.
Make sure the questions are not repeated and check all the questions to be conforming to the text as well.
Make sure to format your response like RESPONSE_JSON below and use it as a guide.
Ensure to make {number} MCQs.
### RESPONSE_JSON
{RESPONSE_JSON}
`

const evaluateTemplate = `
You are an expert English grammarian and writer. Given a Multiple Choice Quiz for {subject} students.
You need to evaluate the complexity of the questions and give a complete analysis of the quiz. Only use at max 50 words for complexity analysis.
If the quiz is not at par with the cognitive and analytical abilities of the students,
update the quiz questions which need to be changed and change the tone such that it perfectly fits the student abilities.
Quiz_MCQs:
{quiz}

Check from an expert English Writer of the above quiz:
`

// Composer renders the generate and evaluate prompts.
type Composer struct {
	generate prompts.PromptTemplate
	evaluate prompts.PromptTemplate
}

// NewComposer creates a Composer with the built-in templates.
func NewComposer() *Composer {
	return &Composer{
		generate: prompts.PromptTemplate{
			Template:       generateTemplate,
			InputVariables: []string{"text", "number", "subject", "tone", "RESPONSE_JSON"},
			TemplateFormat: prompts.TemplateFormatFString,
		},
		evaluate: prompts.PromptTemplate{
			Template:       evaluateTemplate,
			InputVariables: []string{"subject", "quiz"},
			TemplateFormat: prompts.TemplateFormatFString,
		},
	}
}

// Generate renders the quiz generation prompt from the request fields held in pc.
func (c *Composer) Generate(pc *domain.PipelineContext) (string, error) {
	if pc == nil {
		return "", domain.NewInvalidInputError("generation context is required")
	}
	if pc.Number <= 0 {
		return "", domain.NewInvalidInputError("number must be greater than 0")
	}
	values := lo.MapValues(pc.Values(), func(v string, _ string) any { return v })
	if err := requireValues(values, "text", "subject", "tone", "RESPONSE_JSON"); err != nil {
		return "", err
	}
	return format(c.generate, values)
}

// Evaluate renders the review prompt for a generated quiz.
func (c *Composer) Evaluate(subject, quiz string) (string, error) {
	values := map[string]any{
		"subject": subject,
		"quiz":    quiz,
	}
	if err := requireValues(values, "subject", "quiz"); err != nil {
		return "", err
	}
	return format(c.evaluate, values)
}

func requireValues(values map[string]any, keys ...string) error {
	missing := lo.Filter(keys, func(k string, _ int) bool {
		s, _ := values[k].(string)
		return strings.TrimSpace(s) == ""
	})
	if len(missing) > 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("missing prompt parameters: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func format(tmpl prompts.PromptTemplate, values map[string]any) (string, error) {
	out, err := tmpl.Format(values)
	if err != nil {
		return "", domain.NewError(domain.ErrInvalidInput, "failed to render prompt", err)
	}
	return out, nil
}
