// Package config 从环境变量加载运行配置
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mangohow/fmpmcp/errors"
)

const (
	APIKeyEnv      = "FMP_API_KEY"
	DefaultBaseURL = "https://financialmodelingprep.com/stable"
)

type Config struct {
	APIKey      string        `env:"FMP_API_KEY"`
	BaseURL     string        `env:"FMP_BASE_URL"     envDefault:"https://financialmodelingprep.com/stable"`
	HTTPTimeout time.Duration `env:"FMP_HTTP_TIMEOUT" envDefault:"0"`
	MaxWorkers  int           `env:"FMP_MAX_WORKERS"  envDefault:"8"`

	LogLevel    string `env:"FMP_LOG_LEVEL"    envDefault:"info"`
	LogFile     string `env:"FMP_LOG_FILE"`
	LogEncoding string `env:"FMP_LOG_ENCODING" envDefault:"console"`
}

// LoadEnvFile 加载 .env 文件, 已存在的环境变量不会被覆盖.
// path为空时尝试当前目录的 .env, 不存在则忽略
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}

// Load 解析环境变量, 缺少 API key 时返回 ConfigurationMissing
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.ConfigurationMissing(APIKeyEnv)
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("FMP_HTTP_TIMEOUT must not be negative: %s", c.HTTPTimeout)
	}

	if c.MaxWorkers <= 0 {
		return fmt.Errorf("FMP_MAX_WORKERS must be positive: %d", c.MaxWorkers)
	}

	return nil
}
