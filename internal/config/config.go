package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required,hostname_port"`
	WebDir          string        `env:"WEB_DIR" envDefault:"./web"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576" validate:"gt=0"`
	StrictStatus    bool          `env:"STRICT_STATUS" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	OTelEnabled     bool          `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName     string        `env:"OTEL_SERVICE_NAME" envDefault:"architect-calculators" validate:"required"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
