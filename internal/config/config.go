package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// Config holds process configuration: artifact locations, storage, logging.
// Values come from an optional riskengine.yaml and RISK_* environment
// variables, env winning.
type Config struct {
	ModelPath        string `mapstructure:"model_path"`
	LabelsPath       string `mapstructure:"labels_path"`
	TransformersPath string `mapstructure:"transformers_path"`
	DatabasePath     string `mapstructure:"database_path"`
	LogLevel         string `mapstructure:"log_level"`
}

// Load reads configuration with defaults mirroring the artifact layout the
// fit command produces
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("model_path", "models/risk_classifier.json")
	v.SetDefault("labels_path", "models/label_codec.json")
	v.SetDefault("transformers_path", "models/transformers.json")
	v.SetDefault("database_path", "data/assessments.db")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("RISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("riskengine")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, errors.NewLoadError("config", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewLoadError("config", err)
	}

	return &cfg, nil
}
