package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Vision providers
	VisionProvider string `envconfig:"VISION_PROVIDER" default:"visor"`
	VisorURL       string `envconfig:"VISOR_URL" default:"http://localhost:8080"`
	AWSRegion      string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Monitor stream
	MonitorTokenSecret string        `envconfig:"MONITOR_TOKEN_SECRET" required:"true"`
	MonitorTokenTTL    time.Duration `envconfig:"MONITOR_TOKEN_TTL" default:"15m"`

	// Snapshots
	SnapshotDir string `envconfig:"SNAPSHOT_DIR" default:"./images"`

	// Alerts
	AlertWebhookURL    string `envconfig:"ALERT_WEBHOOK_URL"`
	AlertWebhookSecret string `envconfig:"ALERT_WEBHOOK_SECRET"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
