package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"mcq-gen/internal/domain"
)

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerationRequest checks the bounds of a quiz generation request.
// Source text is only required to be non-blank; its size is limited by the reader.
func (v *Validator) ValidateGenerationRequest(req *domain.GenerationRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.SourceText) == "" {
		errs = append(errs, domain.NewMissingFieldError("text"))
	}

	if req.QuestionCount < domain.MinQuestionCount || req.QuestionCount > domain.MaxQuestionCount {
		errs = append(errs, domain.NewOutOfRangeError("count", req.QuestionCount, domain.MinQuestionCount, domain.MaxQuestionCount))
	}

	errs = append(errs, requiredText("subject", req.Subject, domain.MaxSubjectLength)...)
	errs = append(errs, requiredText("tone", req.Tone, domain.MaxToneLength)...)

	return errs
}

// ValidateResultID checks that id looks like a ULID.
func (v *Validator) ValidateResultID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !ulidPattern.MatchString(strings.ToUpper(id)) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}
	return nil
}

func requiredText(field, value string, max int) domain.ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if n := utf8.RuneCountInString(value); n > max {
		return domain.ValidationErrors{domain.NewTooLongError(field, n, max)}
	}
	return nil
}
