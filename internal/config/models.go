package config

// ModelsConfig represents the configuration for the pretrained model artifacts
type ModelsConfig struct {
	Dir string
}

// FusionConfig represents the decision-fusion thresholds
type FusionConfig struct {
	URLStrongThreshold float64
	URLPhishingCutoff  float64
	MidThreshold       float64
	EmailThreshold     float64
	Alpha              float64
}

// ServerConfig represents the configuration for the serving frontends
type ServerConfig struct {
	Frontend          string
	ListenAddress     string
	SMTPListenAddress string
	BlockFraudulent   bool
	StatusHeader      string
	ScoreHeader       string
	ReportHeader      string
	RelayAddress      string
	RelayPort         int
	RelayEnabled      bool
}

// StorageConfig represents the configuration for analyzed-email persistence
type StorageConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// GetModels returns the model artifact configuration
func (c *Config) GetModels() ModelsConfig {
	return ModelsConfig{
		Dir: c.GetString("models.dir"),
	}
}

// GetFusion returns the fusion threshold configuration
func (c *Config) GetFusion() FusionConfig {
	return FusionConfig{
		URLStrongThreshold: c.GetFloat64("fusion.url_strong_threshold"),
		URLPhishingCutoff:  c.GetFloat64("fusion.url_phishing_cutoff"),
		MidThreshold:       c.GetFloat64("fusion.mid_threshold"),
		EmailThreshold:     c.GetFloat64("fusion.email_threshold"),
		Alpha:              c.GetFloat64("fusion.alpha"),
	}
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		Frontend:          c.GetString("server.frontend"),
		ListenAddress:     c.GetString("server.listen_address"),
		SMTPListenAddress: c.GetString("server.smtp_listen_address"),
		BlockFraudulent:   c.GetBool("server.block_fraudulent"),
		StatusHeader:      c.GetString("server.headers.status"),
		ScoreHeader:       c.GetString("server.headers.score"),
		ReportHeader:      c.GetString("server.headers.report"),
		RelayAddress:      c.GetString("server.relay_address"),
		RelayPort:         c.GetInt("server.relay_port"),
		RelayEnabled:      c.GetBool("server.relay_enabled"),
	}
}

// GetStorage returns the storage configuration
func (c *Config) GetStorage() StorageConfig {
	return StorageConfig{
		Type:       c.GetString("storage.type"),
		SQLitePath: c.GetString("storage.sqlite_path"),
		MySQLDSN:   c.GetString("storage.mysql_dsn"),
	}
}
