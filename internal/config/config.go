// Package config loads gridconv settings from a config file and the
// environment and wires up the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full tool configuration.
type Config struct {
	Markers MarkersConfig `yaml:"markers" mapstructure:"markers"`
	Locate  LocateConfig  `yaml:"locate" mapstructure:"locate"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// MarkersConfig selects the marker dataset.
type MarkersConfig struct {
	// File points at an external marker file; empty uses the bundled
	// dataset.
	File string `yaml:"file" mapstructure:"file"`
	// Cache wraps a file-backed dataset with an in-memory cache.
	Cache bool `yaml:"cache" mapstructure:"cache"`
}

// LocateConfig tunes the inverse conversion.
type LocateConfig struct {
	MaxSteps     int  `yaml:"max_steps" mapstructure:"max_steps"`
	SpatialIndex bool `yaml:"spatial_index" mapstructure:"spatial_index"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from ./config.yaml (optional) and GRIDCONV_*
// environment variables over built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GRIDCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("markers.cache", true)
	v.SetDefault("locate.max_steps", 200)
	v.SetDefault("locate.spatial_index", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
