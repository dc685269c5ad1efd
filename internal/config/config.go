package config

import (
	"github.com/caarlos0/env/v11"
)

// Catalog backend names accepted by CATALOG_BACKEND.
const (
	BackendAPI    = "api"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMongo  = "mongo"
)

// PlaceholderBaseURL is the sample endpoint shipped in the default config.
// Running against it degrades gracefully: the app logs a warning and serves
// an empty catalog instead of failing.
const PlaceholderBaseURL = "https://changeme.mockapi.io/api/v1/products"

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Log      LogConfig      `envPrefix:"LOG_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	API      APIConfig      `envPrefix:"API_"`
	File     FileConfig     `envPrefix:"FILE_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	LLM      LLMConfig      `envPrefix:"LLM_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:".*"`
}

type LogConfig struct {
	Mode string `env:"MODE" envDefault:"development"`
}

type CatalogConfig struct {
	Backend  string `env:"BACKEND" envDefault:"api"`
	PageSize int    `env:"PAGE_SIZE" envDefault:"9"`
}

type APIConfig struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://changeme.mockapi.io/api/v1/products"`
}

// IsPlaceholder reports whether the base URL was never configured.
func (c APIConfig) IsPlaceholder() bool {
	return c.BaseURL == PlaceholderBaseURL
}

type FileConfig struct {
	Path string `env:"PATH" envDefault:"sneakerfit.db"`
}

type DatabaseConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"sneakerfit"`
}

type LLMConfig struct {
	GoogleAIAPIKey string `env:"GOOGLE_AI_API_KEY"`
	Model          string `env:"MODEL" envDefault:"googleai/gemini-2.5-flash"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"sneakerfit.product-events"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
