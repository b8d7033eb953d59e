package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/phishmail/")
	v.AddConfigPath("$HOME/.phishmail")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("PHISHMAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Model artifact defaults
	v.SetDefault("models.dir", "/var/lib/phishmail/models")

	// Fusion defaults
	v.SetDefault("fusion.url_strong_threshold", 0.7)
	v.SetDefault("fusion.url_phishing_cutoff", 0.6)
	v.SetDefault("fusion.mid_threshold", 0.4)
	v.SetDefault("fusion.email_threshold", 0.6)
	v.SetDefault("fusion.alpha", 0.5)

	// Server defaults
	v.SetDefault("server.frontend", "http")
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.smtp_listen_address", "0.0.0.0:10025")
	v.SetDefault("server.block_fraudulent", false)
	v.SetDefault("server.headers.status", "X-Phishing-Status")
	v.SetDefault("server.headers.score", "X-Phishing-Score")
	v.SetDefault("server.headers.report", "X-Phishing-Report")
	v.SetDefault("server.relay_address", "127.0.0.1")
	v.SetDefault("server.relay_port", 10026)
	v.SetDefault("server.relay_enabled", false)

	// Trusted sender domains bypass analysis entirely
	v.SetDefault("trust.domains", []string{})

	// Storage defaults
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.sqlite_path", "/data/phishmail.db")
	v.SetDefault("storage.mysql_dsn", "user:password@tcp(localhost:3306)/phishmail")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
