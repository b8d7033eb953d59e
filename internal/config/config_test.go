package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	fusion := cfg.GetFusion()
	assert.Equal(t, 0.7, fusion.URLStrongThreshold)
	assert.Equal(t, 0.6, fusion.URLPhishingCutoff)
	assert.Equal(t, 0.4, fusion.MidThreshold)
	assert.Equal(t, 0.6, fusion.EmailThreshold)
	assert.Equal(t, 0.5, fusion.Alpha)

	server := cfg.GetServer()
	assert.Equal(t, "http", server.Frontend)
	assert.Equal(t, "X-Phishing-Status", server.StatusHeader)
	assert.Equal(t, "X-Phishing-Score", server.ScoreHeader)
	assert.False(t, server.BlockFraudulent)
	assert.False(t, server.RelayEnabled)

	storage := cfg.GetStorage()
	assert.Equal(t, "memory", storage.Type)

	assert.Equal(t, "/var/lib/phishmail/models", cfg.GetModels().Dir)
	assert.Empty(t, cfg.GetStringSlice("trust.domains"))
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("fusion.alpha", 0.8)
	v.Set("server.frontend", "smtp")
	v.Set("storage.type", "sqlite")
	v.Set("trust.domains", []string{"example.org"})

	cfg := NewFromViper(v)
	assert.Equal(t, 0.8, cfg.GetFusion().Alpha)
	assert.Equal(t, "smtp", cfg.GetServer().Frontend)
	assert.Equal(t, "sqlite", cfg.GetStorage().Type)
	assert.Equal(t, []string{"example.org"}, cfg.GetStringSlice("trust.domains"))
}
