// Package source turns uploaded documents into the plain text quizzes are
// generated from.
package source

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"mcq-gen/internal/domain"

	"go.uber.org/zap"
	pdf "rsc.io/pdf"
)

// DefaultMaxChars bounds extracted text when no limit is configured.
const DefaultMaxChars = 12000

// Reader implements domain.SourceReader for .pdf and .txt uploads.
type Reader struct {
	maxChars int
	logger   *zap.Logger
}

// NewReader creates a Reader that keeps at most maxChars characters of text.
func NewReader(maxChars int, logger *zap.Logger) *Reader {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{maxChars: maxChars, logger: logger}
}

// ReadSource dispatches on the file extension.
func (r *Reader) ReadSource(filename string, src io.Reader) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", domain.NewInternalError("failed to read uploaded file", err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = r.extractPDF(data)
		if err != nil {
			return "", domain.NewError(domain.ErrInvalidInput, fmt.Sprintf("Error reading PDF file: %v", err), err)
		}
	case ".txt":
		if !utf8.Valid(data) {
			return "", domain.NewInvalidInputError("text file is not valid UTF-8")
		}
		text = string(data)
	default:
		return "", domain.NewUnsupportedInputError("Unsupported file format. Please upload a PDF or TXT file.")
	}

	text = truncate(text, r.maxChars)
	r.logger.Debug("Source text extracted",
		zap.String("filename", filename),
		zap.Int("chars", utf8.RuneCountInString(text)))
	return text, nil
}

func (r *Reader) extractPDF(data []byte) (text string, err error) {
	// rsc.io/pdf panics on some malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed PDF: %v", p)
		}
	}()

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, t := range page.Content().Text {
			buf.WriteString(t.S)
		}
		buf.WriteString("\n\n")
		if buf.Len() >= r.maxChars*utf8.UTFMax {
			break
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

var _ domain.SourceReader = (*Reader)(nil)
