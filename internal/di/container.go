package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/adapters/model"
	"github.com/elmehdi/phishmail/internal/config"
	"github.com/elmehdi/phishmail/internal/core"
	"github.com/elmehdi/phishmail/internal/factory"
	"github.com/elmehdi/phishmail/internal/logging"
	"github.com/elmehdi/phishmail/internal/ports"
	"github.com/elmehdi/phishmail/internal/report"
	"github.com/elmehdi/phishmail/internal/trust"
	"github.com/elmehdi/phishmail/internal/urlfeat"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewModelFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}

	// Register model artifacts; loading fails fast on a missing artifact
	if err := container.Provide(func(f *factory.ModelFactory) (*model.Artifacts, error) {
		return f.LoadArtifacts()
	}); err != nil {
		return nil, err
	}

	// Register classifiers and URL feature machinery from the artifacts
	if err := container.Provide(func(a *model.Artifacts) core.ContentClassifier {
		return a.ContentModel
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(a *model.Artifacts) core.URLClassifier {
		return a.URLModel
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(a *model.Artifacts) *urlfeat.Schema {
		return a.URLSchema
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(a *model.Artifacts) *urlfeat.Extractor {
		return urlfeat.NewExtractor(a.URLVectorizer, a.TLDEncoder)
	}); err != nil {
		return nil, err
	}

	// Register fusion policy
	if err := container.Provide(func(cfg *config.Config) core.FusionPolicy {
		fusionConfig := cfg.GetFusion()
		return core.FusionPolicy{
			URLStrong:         fusionConfig.URLStrongThreshold,
			URLPhishingCutoff: fusionConfig.URLPhishingCutoff,
			Mid:               fusionConfig.MidThreshold,
			EmailThreshold:    fusionConfig.EmailThreshold,
			Alpha:             fusionConfig.Alpha,
		}
	}); err != nil {
		return nil, err
	}

	// Register analyzer service
	if err := container.Provide(core.NewAnalyzerService); err != nil {
		return nil, err
	}

	// Register report generator
	if err := container.Provide(report.NewGenerator); err != nil {
		return nil, err
	}

	// Register trusted-domain checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *trust.Checker {
		return trust.NewChecker(cfg.GetStringSlice("trust.domains"), logger)
	}); err != nil {
		return nil, err
	}

	// Register email repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.EmailRepository, error) {
		return f.CreateEmailRepository()
	}); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
