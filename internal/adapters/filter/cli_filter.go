package filter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/core"
	"github.com/elmehdi/phishmail/internal/report"
)

// CliFilter implements a command-line interface for one-shot email analysis
type CliFilter struct {
	service   *core.AnalyzerService
	generator *report.Generator
	logger    *zap.Logger
	verbose   bool
}

// NewCliFilter creates a new CLI filter
func NewCliFilter(service *core.AnalyzerService, generator *report.Generator, logger *zap.Logger, verbose bool) (*CliFilter, error) {
	return &CliFilter{
		service:   service,
		generator: generator,
		logger:    logger,
		verbose:   verbose,
	}, nil
}

// ProcessEmail processes an email and displays the results
func (f *CliFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.From))

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("To: %s\n", email.To)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))

	// Print body preview if verbose
	if f.verbose {
		preview := email.Body
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nBody preview:\n%s\n", preview)
	}

	fmt.Printf("\n")

	// Analyze email
	fmt.Printf("=== Analysis ===\n")
	startTime := time.Now()
	result, err := f.service.AnalyzeEmail(ctx, email)
	if err != nil {
		f.logger.Error("Failed to analyze email", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return nil, err
	}
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Verdict: %s\n", result.Bundle.Verdict)
	fmt.Printf("Final score: %.4f\n", result.Bundle.FinalScore)
	fmt.Printf("Content probability: %.4f\n", result.Bundle.EmailProba)
	fmt.Printf("URLs detected: %d (scored: %d)\n", len(result.Signals.RawURLs), result.URLStats.Count)
	fmt.Printf("Processing time: %v\n", duration)

	fmt.Printf("\n%s\n", f.generator.Render(result))

	return result, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}
