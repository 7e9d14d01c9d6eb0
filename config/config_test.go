package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbnet/config"
	"github.com/katalvlaran/dbnet/logger"
	"github.com/katalvlaran/dbnet/sampling"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "particle", cfg.Inference.Engine)
	assert.Equal(t, 10000, cfg.Inference.Samples)
	assert.Equal(t, 10, cfg.Inference.Horizon)
	assert.Equal(t, int64(0), cfg.Inference.Seed)
	assert.Equal(t, 1, cfg.Inference.Workers)
	assert.Equal(t, sampling.DefaultMaxResampleScans, cfg.Inference.MaxResampleScans)
	assert.Equal(t, 0.95, cfg.Inference.Confidence)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DBNET_INFERENCE_SAMPLES", "500")
	t.Setenv("DBNET_INFERENCE_ENGINE", "prediction")
	t.Setenv("DBNET_LOG_FORMAT", "json")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Inference.Samples)
	assert.Equal(t, "prediction", cfg.Inference.Engine)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
inference:
  horizon: 4
  workers: 3
  seed: 42
`), 0o600))

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Inference.Horizon)
	assert.Equal(t, 3, cfg.Inference.Workers)
	assert.Equal(t, int64(42), cfg.Inference.Seed)
	assert.Equal(t, 10000, cfg.Inference.Samples, "unset keys keep defaults")
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inference:\n  horizon: 4\n"), 0o600))
	t.Setenv("DBNET_INFERENCE_HORIZON", "7")

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Inference.Horizon)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("DBNET_INFERENCE_WORKERS", "0")
	_, err := config.Load(viper.New(), "")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Log: config.LogConfig{Level: "info", Format: "text"},
			Inference: config.InferenceConfig{
				Engine: "particle", Samples: 1, Horizon: 0, Workers: 1,
				MaxResampleScans: 1, Confidence: 0.9,
			},
		}
	}
	require.NoError(t, valid().Validate())

	mutations := map[string]func(*config.Config){
		"level":      func(c *config.Config) { c.Log.Level = "loud" },
		"format":     func(c *config.Config) { c.Log.Format = "xml" },
		"engine":     func(c *config.Config) { c.Inference.Engine = "gibbs" },
		"samples":    func(c *config.Config) { c.Inference.Samples = 0 },
		"horizon":    func(c *config.Config) { c.Inference.Horizon = -1 },
		"workers":    func(c *config.Config) { c.Inference.Workers = 0 },
		"scans":      func(c *config.Config) { c.Inference.MaxResampleScans = 0 },
		"confidence": func(c *config.Config) { c.Inference.Confidence = 1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}

	c := valid()
	c.Log.Format = "xml"
	c.Inference.Engine = "gibbs"
	err := c.Validate()
	assert.ErrorIs(t, err, logger.ErrUnknownFormat)
	assert.ErrorIs(t, err, sampling.ErrUnknownEngine)
}

func TestEngineOptions(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Len(t, cfg.EngineOptions(), 3)
}
