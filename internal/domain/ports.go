package domain

import (
	"context"
	"io"
)

// LLM is the opaque model invocation capability. Implementations return the
// raw completion text or a transport/auth/quota error.
type LLM interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// SourceReader turns an uploaded document into plain source text.
type SourceReader interface {
	ReadSource(filename string, r io.Reader) (string, error)
}

// ReportRenderer exports a quiz result as a document.
type ReportRenderer interface {
	Render(ctx context.Context, result *QuizResult, w io.Writer) error
}

// ResultStore keeps generated results around for the lifetime of a session.
type ResultStore interface {
	Put(ctx context.Context, result *QuizResult) error
	Get(ctx context.Context, id string) (*QuizResult, error)
}
