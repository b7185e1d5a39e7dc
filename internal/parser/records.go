package parser

import (
	"fmt"
	"strings"

	"mcq-gen/internal/domain"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Candidate field names, tried in order.
var (
	questionFields = []string{"mcq", "question"}
	optionsFields  = []string{"options"}
	correctFields  = []string{"correct", "answer"}
)

const optionSeparator = " || "

func (p *Parser) records(doc gjson.Result, raw string) ([]domain.QuestionRecord, error) {
	if !doc.IsObject() {
		return nil, domain.NewParseError(
			fmt.Sprintf("expected a JSON object keyed by question, got %s", describe(doc)), raw)
	}

	records := make([]domain.QuestionRecord, 0)
	var invalid *domain.ParseError
	doc.ForEach(func(key, entry gjson.Result) bool {
		rec := domain.QuestionRecord{
			Question: stringify(lookup(entry, questionFields)),
			Options:  formatOptions(lookup(entry, optionsFields)),
			Correct:  stringify(lookup(entry, correctFields)),
		}
		if p.strict {
			if rec.Question == "" || rec.Options == "" {
				invalid = domain.NewParseError(
					fmt.Sprintf("question %q is missing its text or options", key.String()), raw)
				return false
			}
		}
		records = append(records, rec)
		return true
	})
	if invalid != nil {
		return nil, invalid
	}
	if p.strict && len(records) == 0 {
		return nil, domain.NewParseError("quiz contains no questions", raw)
	}

	p.logger.Debug("Parsed quiz records", zap.Int("count", len(records)))
	return records, nil
}

// lookup returns the first present, non-null field of entry. Non-object
// entries have no fields.
func lookup(entry gjson.Result, names []string) gjson.Result {
	if !entry.IsObject() {
		return gjson.Result{}
	}
	for _, name := range names {
		if v := entry.Get(name); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// formatOptions joins an options object as "label -> text" pairs in source
// order. Anything else is stringified as is.
func formatOptions(v gjson.Result) string {
	if !v.IsObject() {
		return stringify(v)
	}
	var parts []string
	v.ForEach(func(label, text gjson.Result) bool {
		parts = append(parts, label.String()+" -> "+stringify(text))
		return true
	})
	return strings.Join(parts, optionSeparator)
}

func stringify(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

func describe(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "array"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "boolean"
	case v.Type == gjson.Null:
		return "null"
	}
	return "unknown value"
}
