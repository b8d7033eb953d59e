package ports

import (
	"context"

	"github.com/elmehdi/phishmail/internal/core"
)

// Frontend is a serving surface around the analyzer: the HTTP API or the
// SMTP content filter
type Frontend interface {
	// ProcessEmail analyzes one email through the core pipeline
	ProcessEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error)

	// Start starts the frontend
	Start() error

	// Stop stops the frontend
	Stop() error
}
