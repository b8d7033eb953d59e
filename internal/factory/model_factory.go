package factory

import (
	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/adapters/model"
	"github.com/elmehdi/phishmail/internal/config"
)

// ModelFactory loads the pretrained model artifacts
type ModelFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewModelFactory creates a new model factory
func NewModelFactory(cfg *config.Config, logger *zap.Logger) *ModelFactory {
	return &ModelFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// LoadArtifacts loads every configured artifact, failing fast when any is
// missing or corrupt
func (f *ModelFactory) LoadArtifacts() (*model.Artifacts, error) {
	modelsConfig := f.cfg.GetModels()
	return model.LoadArtifacts(modelsConfig.Dir, f.logger)
}
