package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/portgraph/internal/codec"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	NetworkPaths []string // hcl files or directories
	Format       string   // export format, see codec.Formats
	OutputPath   string   // empty writes to the app's output writer
	NoFire       bool     // skip fire blocks

	LogFormat string
	LogLevel  string
	ServePort int

	PublishURL       string
	PublishNamespace string
	PublishInsecure  bool
	PublishTimeout   time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.NetworkPaths) == 0 {
		return nil, errors.New("at least one network path is required")
	}
	if cfg.Format == "" {
		cfg.Format = "dot"
	}
	if _, err := codec.ForFormat(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.ServePort < 0 || cfg.ServePort > 65535 {
		return nil, fmt.Errorf("serve port %d is out of range", cfg.ServePort)
	}
	if cfg.PublishInsecure && cfg.PublishURL == "" {
		return nil, errors.New("publish-insecure requires a publish URL")
	}

	return &cfg, nil
}
