package main

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Output struct {
		Format string `mapstructure:"format"` // binary | ascii
	} `mapstructure:"output"`

	Mapping struct {
		Enabled bool `mapstructure:"enabled"`
		Reserve int  `mapstructure:"reserve"` // write-mapped reservation, bytes
	} `mapstructure:"mapping"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Output.Format = "binary"
	cfg.Mapping.Enabled = true
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
