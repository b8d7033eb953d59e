package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/adapters/filter"
	"github.com/elmehdi/phishmail/internal/adapters/web"
	"github.com/elmehdi/phishmail/internal/config"
	"github.com/elmehdi/phishmail/internal/core"
	"github.com/elmehdi/phishmail/internal/ports"
	"github.com/elmehdi/phishmail/internal/report"
	"github.com/elmehdi/phishmail/internal/trust"
)

// FrontendFactory creates serving frontends based on configuration
type FrontendFactory struct {
	cfg        *config.Config
	logger     *zap.Logger
	service    *core.AnalyzerService
	generator  *report.Generator
	repository core.EmailRepository
	trusted    *trust.Checker
}

// NewFrontendFactory creates a new frontend factory
func NewFrontendFactory(
	cfg *config.Config,
	logger *zap.Logger,
	service *core.AnalyzerService,
	generator *report.Generator,
	repository core.EmailRepository,
	trusted *trust.Checker,
) *FrontendFactory {
	return &FrontendFactory{
		cfg:        cfg,
		logger:     logger,
		service:    service,
		generator:  generator,
		repository: repository,
		trusted:    trusted,
	}
}

// CreateFrontend creates a frontend based on the configuration
func (f *FrontendFactory) CreateFrontend() (ports.Frontend, error) {
	serverConfig := f.cfg.GetServer()

	switch serverConfig.Frontend {
	case "http":
		return web.NewServer(
			f.service,
			f.generator,
			f.repository,
			f.logger,
			serverConfig.ListenAddress,
		), nil
	case "smtp":
		return filter.NewSMTPFilter(
			f.service,
			f.trusted,
			f.logger,
			serverConfig.SMTPListenAddress,
			serverConfig.BlockFraudulent,
			serverConfig.StatusHeader,
			serverConfig.ScoreHeader,
			serverConfig.ReportHeader,
			serverConfig.RelayAddress,
			serverConfig.RelayPort,
			serverConfig.RelayEnabled,
		), nil
	default:
		return nil, fmt.Errorf("unsupported frontend type: %s", serverConfig.Frontend)
	}
}
