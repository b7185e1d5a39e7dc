package prompt

import (
	"fmt"
	"os"

	"mcq-gen/internal/domain"

	"github.com/tidwall/gjson"
)

// SchemaJSON serialises the example schema for the RESPONSE_JSON slot.
func SchemaJSON(s *domain.ResponseSchema) (string, error) {
	if s == nil || len(s.Questions) == 0 {
		return "", domain.NewInvalidInputError("response schema is empty")
	}
	b, err := s.MarshalJSON()
	if err != nil {
		return "", domain.NewInternalError("failed to serialise response schema", err)
	}
	return string(b), nil
}

// LoadSchema reads a Response.json style example file. An empty path yields
// the built-in default.
func LoadSchema(path string) (*domain.ResponseSchema, error) {
	if path == "" {
		return domain.DefaultResponseSchema(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response schema %s: %w", path, err)
	}
	return ParseSchema(data)
}

// ParseSchema decodes an example schema keeping entry and option order.
func ParseSchema(data []byte) (*domain.ResponseSchema, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("response schema is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("response schema must be a JSON object")
	}

	schema := &domain.ResponseSchema{}
	doc.ForEach(func(key, entry gjson.Result) bool {
		q := domain.SchemaQuestion{
			Key:     key.String(),
			MCQ:     entry.Get("mcq").String(),
			Correct: entry.Get("correct").String(),
		}
		entry.Get("options").ForEach(func(label, text gjson.Result) bool {
			q.Options = append(q.Options, domain.SchemaOption{Label: label.String(), Text: text.String()})
			return true
		})
		schema.Questions = append(schema.Questions, q)
		return true
	})
	if len(schema.Questions) == 0 {
		return nil, fmt.Errorf("response schema has no entries")
	}
	return schema, nil
}
