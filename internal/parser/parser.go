// Package parser turns quiz-generation completions into question records.
//
// Model output is loosely structured: it may be wrapped in markdown fences,
// surrounded by prose, cut off before its closing braces, or use alternate
// key names. Parse recovers from those cases and nothing more.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"mcq-gen/internal/domain"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Parser converts raw quiz output into ordered question records.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	strict bool
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithStrictRecords rejects the whole quiz when any entry lacks question text
// or options, or when no entries are present.
func WithStrictRecords(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse accepts either completion text (string, []byte, json.RawMessage) or
// already structured data (map[string]any, gjson.Result). Any failure is
// returned as *domain.ParseError and no records are returned with it.
func (p *Parser) Parse(input any) ([]domain.QuestionRecord, error) {
	var (
		doc gjson.Result
		raw string
		err error
	)

	switch v := input.(type) {
	case string:
		raw = v
		doc, err = p.parseText(v)
	case []byte:
		raw = string(v)
		doc, err = p.parseText(raw)
	case json.RawMessage:
		raw = string(v)
		doc, err = p.parseText(raw)
	case gjson.Result:
		raw = v.Raw
		doc = v
	case map[string]any:
		raw, err = orderedJSON(v)
		if err != nil {
			return nil, domain.NewParseError(err.Error(), fmt.Sprintf("%v", v))
		}
		doc = gjson.Parse(raw)
	case nil:
		return nil, domain.NewParseError("no quiz data", "")
	default:
		return nil, domain.NewParseError(fmt.Sprintf("unsupported quiz data type %T", input), fmt.Sprintf("%v", input))
	}
	if err != nil {
		return nil, err
	}

	return p.records(doc, raw)
}

// parseText extracts the JSON object from text and parses it strictly,
// retrying once with balancing closers appended.
func (p *Parser) parseText(text string) (gjson.Result, error) {
	candidate := Extract(text)

	doc, err := strictParse(candidate)
	if err == nil {
		return doc, nil
	}
	p.logger.Debug("Strict parse of quiz output failed, attempting repair", zap.Error(err))

	suffix := closers(candidate)
	if suffix == "" {
		return gjson.Result{}, domain.NewParseError(err.Error(), text)
	}
	doc, repairErr := strictParse(candidate + suffix)
	if repairErr != nil {
		p.logger.Debug("Repaired quiz output still invalid",
			zap.String("appended", suffix), zap.Error(repairErr))
		return gjson.Result{}, domain.NewParseError(err.Error(), text)
	}
	p.logger.Info("Repaired truncated quiz output", zap.String("appended", suffix))
	return doc, nil
}

// strictParse validates s as a single JSON value. encoding/json supplies the
// error message; gjson keeps key order for traversal.
func strictParse(s string) (gjson.Result, error) {
	var probe json.RawMessage
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(probe), nil
}

// orderedJSON encodes a decoded mapping with its top-level keys in natural
// order ("2" before "10"). Go maps carry no insertion order.
func orderedJSON(m map[string]any) (string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m[k])
		if err != nil {
			return "", fmt.Errorf("entry %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}
