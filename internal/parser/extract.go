package parser

import (
	"regexp"
	"strings"
)

var (
	jsonFencePattern = regexp.MustCompile("(?is)```json\\s*(\\{.*?\\})\\s*```")
	anyFencePattern  = regexp.MustCompile("(?s)```[\\w-]*\\s*(\\{.*?\\})\\s*```")
)

// Extract isolates the JSON object inside a model completion. Attempts, first
// match wins: a ```json fence, any fence, the first '{' through the last '}',
// and finally the raw text. When the brace region is unbalanced the output was
// cut off, so everything from the first '{' is kept for repair instead.
func Extract(text string) string {
	if m := jsonFencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := anyFencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	start := strings.Index(text, "{")
	if start < 0 {
		return text
	}
	if end := strings.LastIndex(text, "}"); end > start {
		region := text[start : end+1]
		if closers(region) == "" {
			return region
		}
	}
	tail := text[start:]
	if fence := strings.Index(tail, "```"); fence >= 0 {
		tail = tail[:fence]
	}
	return strings.TrimSpace(tail)
}

// closers returns the braces and brackets needed to balance a truncated
// document, innermost first. Delimiters inside string literals are ignored.
func closers(s string) string {
	var open []byte
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			open = append(open, '}')
		case '[':
			open = append(open, ']')
		case '}', ']':
			if n := len(open); n > 0 && open[n-1] == c {
				open = open[:n-1]
			}
		}
	}
	var b strings.Builder
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteByte(open[i])
	}
	return b.String()
}
