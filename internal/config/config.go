// Package config loads service settings from the environment.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Config holds the web service configuration.
type Config struct {
	HTTPAddr       string `env:"ADREPORT_HTTP_ADDR" envDefault:"localhost:8080"`
	DataDir        string `env:"ADREPORT_DATA_DIR"`
	MaxUploadBytes int64  `env:"ADREPORT_MAX_UPLOAD_BYTES" envDefault:"33554432"`
	LogLevel       string `env:"ADREPORT_LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"ADREPORT_LOG_FORMAT" envDefault:"text"`
	GinMode        string `env:"ADREPORT_GIN_MODE" envDefault:"release"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses Config from the given variables instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env cannot check by type alone.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("http addr is required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	// gin.SetMode panics on anything else
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return errors.Errorf("gin mode must be debug, release or test, got %q", c.GinMode)
	}
	return nil
}
