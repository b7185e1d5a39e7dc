package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchema_MarshalJSON_KeepsOrder(t *testing.T) {
	s := &ResponseSchema{Questions: []SchemaQuestion{
		{Key: "2", MCQ: "second", Options: []SchemaOption{{"d", "4"}, {"a", "1"}}, Correct: "d"},
		{Key: "1", MCQ: "first", Options: []SchemaOption{{"b", "x"}}, Correct: "b"},
	}}

	b, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"2": {"mcq": "second", "options": {"d": "4", "a": "1"}, "correct": "d"}, "1": {"mcq": "first", "options": {"b": "x"}, "correct": "b"}}`,
		string(b))
}

func TestDefaultResponseSchema(t *testing.T) {
	s := DefaultResponseSchema()
	require.Len(t, s.Questions, 3)
	assert.Equal(t, "1", s.Questions[0].Key)
	assert.Len(t, s.Questions[0].Options, 4)
	assert.Equal(t, "a", s.Questions[0].Options[0].Label)
}

func TestParseError_PreviewIsBounded(t *testing.T) {
	input := strings.Repeat("x", PreviewLimit+100)
	err := NewParseError("unexpected end of JSON input", input)

	assert.Len(t, err.Preview, PreviewLimit)
	assert.Contains(t, err.Error(), "unexpected end of JSON input")

	de := err.AsDomainError()
	assert.Equal(t, ErrParse, de.Code)
	var pe *ParseError
	assert.True(t, errors.As(de, &pe))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewLLMServiceError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestPipelineContext_Values(t *testing.T) {
	c := &PipelineContext{Text: "t", Number: 7, Subject: "s", Tone: "Easy", ResponseJSON: "{}", Quiz: "q", Review: "r"}
	v := c.Values()
	assert.Equal(t, "7", v["number"])
	assert.Equal(t, "q", v["quiz"])
	assert.Equal(t, "{}", v["RESPONSE_JSON"])
}
