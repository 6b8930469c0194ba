package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "ACCESSIBILITY_CONFIG"
	telegramTokenEnv  = "TELEGRAM_TOKEN"
	logLevelEnv       = "LOG_LEVEL"
	predictorURLEnv   = "PREDICTOR_URL"
	predictorKeyEnv   = "PREDICTOR_API_KEY"
	predictorModelEnv = "PREDICTOR_MODEL_PATH"
	predictTimeoutEnv = "PREDICT_TIMEOUT"
	maxConcurrentEnv  = "MAX_CONCURRENT_ANALYSES"
	maxUploadEnv      = "MAX_UPLOAD_BYTES"
	reportFormatEnv   = "REPORT_FORMAT"
)

type Config struct {
	TelegramToken string          `yaml:"telegramToken"`
	LogLevel      string          `yaml:"logLevel"`
	Predictor     PredictorConfig `yaml:"predictor"`
	// MaxConcurrent сколько скриншотов бот анализирует одновременно
	MaxConcurrent  int64  `yaml:"maxConcurrent"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes"`
	ReportFormat   string `yaml:"reportFormat"`
}

// PredictorConfig внешняя модель: HTTP-сервис или локальный ONNX-файл.
type PredictorConfig struct {
	URL       string        `yaml:"url"`
	APIKey    string        `yaml:"apiKey"`
	ModelPath string        `yaml:"modelPath"`
	Timeout   time.Duration `yaml:"timeout"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Predictor: PredictorConfig{
			Timeout: 10 * time.Second,
		},
		MaxConcurrent:  2,
		MaxUploadBytes: 20 << 20,
		ReportFormat:   "html",
	}
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(predictorURLEnv); v != "" {
		c.Predictor.URL = v
	}
	if v := os.Getenv(predictorKeyEnv); v != "" {
		c.Predictor.APIKey = v
	}
	if v := os.Getenv(predictorModelEnv); v != "" {
		c.Predictor.ModelPath = v
	}
	if v := os.Getenv(reportFormatEnv); v != "" {
		c.ReportFormat = v
	}

	if v := os.Getenv(predictTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", predictTimeoutEnv, err)
		}
		c.Predictor.Timeout = d
	}
	if v := os.Getenv(maxConcurrentEnv); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", maxConcurrentEnv, err)
		}
		c.MaxConcurrent = n
	}
	if v := os.Getenv(maxUploadEnv); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", maxUploadEnv, err)
		}
		c.MaxUploadBytes = n
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("maxConcurrent must be positive, got %d", c.MaxConcurrent)
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("maxUploadBytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.Predictor.Timeout <= 0 {
		return fmt.Errorf("predictor timeout must be positive, got %s", c.Predictor.Timeout)
	}
	return nil
}
