package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"

	"codeberg.org/go-pdf/fpdf"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// optionSeparator joins options in a QuestionRecord.
const optionSeparator = " || "

// PDFRenderer exports quiz results as a printable PDF.
type PDFRenderer struct {
	cfg config.ReportConfig
}

// NewPDFRenderer creates a renderer, filling in defaults for empty settings.
func NewPDFRenderer(cfg config.ReportConfig) *PDFRenderer {
	if cfg.PageSize == "" {
		cfg.PageSize = "A4"
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Helvetica"
	}
	if cfg.MarginsMM <= 0 {
		cfg.MarginsMM = 15
	}
	return &PDFRenderer{cfg: cfg}
}

// Render writes one section per question followed by the review.
func (p *PDFRenderer) Render(ctx context.Context, result *domain.QuizResult, w io.Writer) error {
	if result == nil {
		return fmt.Errorf("no quiz result to render")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", p.cfg.PageSize, "")
	pdf.SetMargins(p.cfg.MarginsMM, p.cfg.MarginsMM, p.cfg.MarginsMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := Title(result.Subject)
	pdf.SetTitle(title, true)
	pdf.SetCreator("mcq-gen", false)
	pdf.AddPage()

	// ---------- title ----------
	pdf.SetFont(p.cfg.FontFamily, "B", 20)
	pdf.CellFormat(0, 14, tr(title), "", 1, "C", false, 0, "")
	if result.Tone != "" {
		pdf.SetFont(p.cfg.FontFamily, "I", 11)
		pdf.CellFormat(0, 8, tr("Tone: "+result.Tone), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	// ---------- questions ----------
	for i, q := range result.Questions {
		pdf.SetFont(p.cfg.FontFamily, "B", 13)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, q.Question)), "", "L", false)
		pdf.SetFont(p.cfg.FontFamily, "", 12)
		for _, line := range OptionLines(q.Options) {
			pdf.MultiCell(0, 6, tr("    "+line), "", "L", false)
		}
		pdf.SetFont(p.cfg.FontFamily, "I", 12)
		pdf.MultiCell(0, 6, tr("Correct answer: "+q.Correct), "", "L", false)
		pdf.Ln(4)
	}

	// ---------- review ----------
	pdf.SetFont(p.cfg.FontFamily, "B", 16)
	pdf.CellFormat(0, 12, "Review", "", 1, "L", false, 0, "")
	pdf.SetFont(p.cfg.FontFamily, "", 12)
	pdf.MultiCell(0, 6, tr(result.Review), "", "L", false)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// Title builds the document heading for a subject.
func Title(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "MCQ Quiz"
	}
	return cases.Title(language.English).String(subject) + " MCQ Quiz"
}

// OptionLines splits a joined options string into one entry per line.
func OptionLines(options string) []string {
	if strings.TrimSpace(options) == "" {
		return nil
	}
	return lo.Map(strings.Split(options, optionSeparator), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
}

var _ domain.ReportRenderer = (*PDFRenderer)(nil)
