// Command mcqgen generates a reviewed multiple choice quiz from a .pdf or
// .txt file and prints it as a table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"mcq-gen/internal/adapter"
	"mcq-gen/internal/adapter/llm"
	"mcq-gen/internal/adapter/report"
	"mcq-gen/internal/adapter/source"
	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"
	"mcq-gen/internal/logger"
	"mcq-gen/internal/parser"
	"mcq-gen/internal/prompt"
	"mcq-gen/internal/service"
	"mcq-gen/internal/validation"

	"go.uber.org/zap"
)

type options struct {
	file    string
	count   int
	subject string
	tone    string
	out     string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("mcqgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.file, "file", "", "source document (.pdf or .txt)")
	fs.IntVar(&opts.count, "count", 5, "number of questions (5-50)")
	fs.StringVar(&opts.subject, "subject", "", "quiz subject")
	fs.StringVar(&opts.tone, "tone", "Simple", "complexity level of the questions")
	fs.StringVar(&opts.out, "out", "", "write a PDF report to this path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.file == "" {
		err := errors.New("-file is required")
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return nil, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout); err != nil {
		logger.Get().Error("Quiz generation failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts *options, stdout io.Writer) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return err
	}
	defer f.Close()

	text, err := source.NewReader(cfg.Quiz.MaxSourceChars, logger.Get().Named("source")).ReadSource(opts.file, f)
	if err != nil {
		return err
	}

	req := &domain.GenerationRequest{
		SourceText:    text,
		QuestionCount: opts.count,
		Subject:       opts.subject,
		Tone:          opts.tone,
	}
	if errs := validation.NewValidator().ValidateGenerationRequest(req); len(errs) > 0 {
		return errs
	}

	model, err := llm.New(cfg.LLM, logger.Get().Named("llm"))
	if err != nil {
		return err
	}
	if closer, ok := model.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	schema, err := prompt.LoadSchema(cfg.Quiz.SchemaPath)
	if err != nil {
		return err
	}

	svc := service.NewQuizService(
		service.NewPipeline(model, prompt.NewComposer()),
		parser.New(parser.WithStrictRecords(cfg.Quiz.StrictRecords), parser.WithLogger(logger.Get().Named("parser"))),
		service.NewResultStore(adapter.NewMemoryCacheAdapter(), 0),
		report.NewPDFRenderer(cfg.Report),
		schema,
	)

	result, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}
	if err := printQuiz(stdout, result); err != nil {
		return err
	}

	if opts.out == "" {
		return nil
	}
	out, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := svc.Report(ctx, result.ID, out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nReport written to %s\n", opts.out)
	return nil
}

// printQuiz writes the quiz table followed by the review.
func printQuiz(w io.Writer, result *domain.QuizResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMCQ\tChoices\tCorrect")
	for i, q := range result.Questions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, oneLine(q.Question), oneLine(q.Options), oneLine(q.Correct))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nReview:\n%s\n", strings.TrimSpace(result.Review))
	return err
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
