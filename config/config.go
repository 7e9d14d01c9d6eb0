// Package config loads dbnet settings from defaults, an optional YAML file
// and DBNET_* environment variables through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/dbnet/logger"
	"github.com/katalvlaran/dbnet/sampling"
)

// EnvPrefix is prepended to every environment override, e.g.
// DBNET_INFERENCE_SAMPLES for inference.samples.
const EnvPrefix = "DBNET"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Inference configuration
	Inference InferenceConfig `mapstructure:"inference"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

// InferenceConfig holds the engine parameters of a run
type InferenceConfig struct {
	Engine           string  `mapstructure:"engine"` // particle, prediction
	Samples          int     `mapstructure:"samples"`
	Horizon          int     `mapstructure:"horizon"`
	Seed             int64   `mapstructure:"seed"` // 0 selects the fixed default seed
	Workers          int     `mapstructure:"workers"`
	MaxResampleScans int     `mapstructure:"max_resample_scans"`
	Confidence       float64 `mapstructure:"confidence"`
}

// Load reads configuration into a Config.
//
// Precedence, lowest first: defaults, the file at path (skipped when path
// is empty), DBNET_* environment variables, then any flags already bound
// on v. The result is validated before it is returned.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetDefaults sets default configuration values
func SetDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logger.FormatText)

	// Inference defaults
	v.SetDefault("inference.engine", string(sampling.KindParticleFilter))
	v.SetDefault("inference.samples", 10000)
	v.SetDefault("inference.horizon", 10)
	v.SetDefault("inference.seed", 0)
	v.SetDefault("inference.workers", 1)
	v.SetDefault("inference.max_resample_scans", sampling.DefaultMaxResampleScans)
	v.SetDefault("inference.confidence", 0.95)
}

// Validate checks every field range. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if err := logger.CheckFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}

	in := c.Inference
	if _, err := sampling.ParseKind(in.Engine); err != nil {
		errs = append(errs, err)
	}
	if in.Samples < 1 {
		errs = append(errs, fmt.Errorf("inference.samples must be ≥ 1, got %d", in.Samples))
	}
	if in.Horizon < 0 {
		errs = append(errs, fmt.Errorf("inference.horizon must be ≥ 0, got %d", in.Horizon))
	}
	if in.Workers < 1 {
		errs = append(errs, fmt.Errorf("inference.workers must be ≥ 1, got %d", in.Workers))
	}
	if in.MaxResampleScans < 1 {
		errs = append(errs, fmt.Errorf("inference.max_resample_scans must be ≥ 1, got %d", in.MaxResampleScans))
	}
	if !(in.Confidence > 0 && in.Confidence < 1) {
		errs = append(errs, fmt.Errorf("inference.confidence must lie in (0,1), got %v", in.Confidence))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// EngineOptions converts the inference section into sampling options.
func (c *Config) EngineOptions() []sampling.Option {
	return []sampling.Option{
		sampling.WithSeed(c.Inference.Seed),
		sampling.WithWorkers(c.Inference.Workers),
		sampling.WithMaxResampleScans(c.Inference.MaxResampleScans),
	}
}
