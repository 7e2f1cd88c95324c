package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	JWT struct {
		Secret        string `yaml:"secret"`
		ExpiryMinutes int    `yaml:"expiryMinutes"`
	} `yaml:"jwt"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"gemini"`

	Match struct {
		KFactor       float64 `yaml:"kFactor"`
		AllowSelfPlay bool    `yaml:"allowSelfPlay"`
	} `yaml:"match"`

	Seed struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"seed"`
}

// LoadConfig reads the configuration file and applies environment overrides
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	applyEnvOverrides(&cfg)

	if cfg.JWT.ExpiryMinutes <= 0 {
		cfg.JWT.ExpiryMinutes = 60 * 24
	}

	return &cfg, nil
}

// applyEnvOverrides lets deployment environments override file values
// without editing the yaml.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.ApiKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
