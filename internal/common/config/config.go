package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string `koanf:"port"`
	Environment  string `koanf:"environment"`
	ReadTimeout  int    `koanf:"read_timeout"`
	WriteTimeout int    `koanf:"write_timeout"`
	BodyLimit    int    `koanf:"body_limit"`

	AIBackend   string `koanf:"ai_backend"`
	OllamaURL   string `koanf:"ollama_url"`
	OllamaModel string `koanf:"ollama_model"`
	ChatURL     string `koanf:"chat_url"`
	ChatModel   string `koanf:"chat_model"`
	ChatAPIKey  string `koanf:"chat_api_key"`
	AITimeout   int    `koanf:"ai_timeout"`
	AIRetries   int    `koanf:"ai_retries"`

	CacheDBPath      string `koanf:"cache_db_path"`
	StrictReferences bool   `koanf:"strict_references"`
	CircuitsURL      string `koanf:"circuits_url"`
}

// AITimeoutDuration — таймаут HTTP-запроса к модели.
func (c *Config) AITimeoutDuration() time.Duration {
	return time.Duration(c.AITimeout) * time.Second
}

// envKeys сопоставляет переменные окружения ключам конфигурации.
var envKeys = map[string]string{
	"PORT":              "port",
	"ENV":               "environment",
	"READ_TIMEOUT":      "read_timeout",
	"WRITE_TIMEOUT":     "write_timeout",
	"BODY_LIMIT":        "body_limit",
	"AI_BACKEND":        "ai_backend",
	"OLLAMA_URL":        "ollama_url",
	"OLLAMA_MODEL":      "ollama_model",
	"CHAT_URL":          "chat_url",
	"CHAT_MODEL":        "chat_model",
	"CHAT_API_KEY":      "chat_api_key",
	"AI_TIMEOUT":        "ai_timeout",
	"AI_RETRIES":        "ai_retries",
	"CACHE_DB_PATH":     "cache_db_path",
	"STRICT_REFERENCES": "strict_references",
	"CIRCUITS_URL":      "circuits_url",
}

func defaults() map[string]any {
	return map[string]any{
		"port":              "3000",
		"environment":       "development",
		"read_timeout":      10,
		"write_timeout":     10,
		"body_limit":        4 * 1024 * 1024,
		"ai_backend":        "ollama",
		"ollama_url":        "http://localhost:11434",
		"ollama_model":      "llama2",
		"chat_url":          "https://api.tambo.ai/v1",
		"chat_model":        "gpt-4",
		"chat_api_key":      "",
		"ai_timeout":        60,
		"ai_retries":        2,
		"cache_db_path":     "",
		"strict_references": false,
		"circuits_url":      "http://localhost:3001",
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем YAML-файл
// из CONFIG_FILE (если задан), затем переменные окружения.
func Load() *Config {
	cfg, err := LoadFrom(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	return cfg
}

func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
