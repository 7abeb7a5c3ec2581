package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EngineConfig configures the scoring engine: delivery sub-score weights
// and batch thresholds.
type EngineConfig struct {
	SizeWeight          float64 `yaml:"size_weight" mapstructure:"size_weight"`
	ChargeWeight        float64 `yaml:"charge_weight" mapstructure:"charge_weight"`
	EncapsulationWeight float64 `yaml:"encapsulation_weight" mapstructure:"encapsulation_weight"`
	PDIWeight           float64 `yaml:"pdi_weight" mapstructure:"pdi_weight"`
	HydrodynamicWeight  float64 `yaml:"hydrodynamic_weight" mapstructure:"hydrodynamic_weight"`
	StabilityWeight     float64 `yaml:"stability_weight" mapstructure:"stability_weight"`

	MinOverall float64 `yaml:"min_overall" mapstructure:"min_overall"`
	MaxDesigns int     `yaml:"max_designs" mapstructure:"max_designs"`
}

// BatchConfig configures batch evaluation.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FORMULATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("engine.size_weight", 0.25)
	v.SetDefault("engine.charge_weight", 0.20)
	v.SetDefault("engine.encapsulation_weight", 0.25)
	v.SetDefault("engine.pdi_weight", 0.15)
	v.SetDefault("engine.hydrodynamic_weight", 0.10)
	v.SetDefault("engine.stability_weight", 0.05)
	v.SetDefault("engine.min_overall", 60)
	v.SetDefault("engine.max_designs", 500)

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
