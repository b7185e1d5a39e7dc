package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// SchemaOption is a labelled answer choice in the example schema.
type SchemaOption struct {
	Label string
	Text  string
}

// SchemaQuestion is one entry of the example schema shown to the model.
type SchemaQuestion struct {
	Key     string
	MCQ     string
	Options []SchemaOption
	Correct string
}

// ResponseSchema is the ordered example the model is asked to imitate.
// Entry and option order are kept as written.
type ResponseSchema struct {
	Questions []SchemaQuestion
}

// DefaultResponseSchema mirrors the Response.json shipped with the application.
func DefaultResponseSchema() *ResponseSchema {
	s := &ResponseSchema{}
	for i := 1; i <= 3; i++ {
		s.Questions = append(s.Questions, SchemaQuestion{
			Key: strconv.Itoa(i),
			MCQ: "multiple choice question",
			Options: []SchemaOption{
				{Label: "a", Text: "choice here"},
				{Label: "b", Text: "choice here"},
				{Label: "c", Text: "choice here"},
				{Label: "d", Text: "choice here"},
			},
			Correct: "correct answer",
		})
	}
	return s
}

// MarshalJSON writes the schema as a JSON object keeping entry order.
func (s *ResponseSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, q := range s.Questions {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeJSONString(&buf, q.Key)
		buf.WriteString(": {")
		writeJSONString(&buf, "mcq")
		buf.WriteString(": ")
		writeJSONString(&buf, q.MCQ)
		buf.WriteString(", ")
		writeJSONString(&buf, "options")
		buf.WriteString(": {")
		for j, opt := range q.Options {
			if j > 0 {
				buf.WriteString(", ")
			}
			writeJSONString(&buf, opt.Label)
			buf.WriteString(": ")
			writeJSONString(&buf, opt.Text)
		}
		buf.WriteString("}, ")
		writeJSONString(&buf, "correct")
		buf.WriteString(": ")
		writeJSONString(&buf, q.Correct)
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
