package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Session   SessionConfig   `toml:"session"`
	LLM       LLMConfig       `toml:"llm"`
	Vector    VectorConfig    `toml:"vector"`
	Knowledge KnowledgeConfig `toml:"knowledge"`
	Upload    UploadConfig    `toml:"upload"`
	Search    SearchConfig    `toml:"search"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type SessionConfig struct {
	TokenSecret string `toml:"token_secret"`
	TTLMinute   int    `toml:"ttl_minute"`
}

type LLMConfig struct {
	DefaultBaseURL string  `toml:"default_base_url"`
	Model          string  `toml:"model"`
	EmbeddingModel string  `toml:"embedding_model"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	RateLimit      float64 `toml:"rate_limit"`
}

type VectorConfig struct {
	Collection string `toml:"collection"`
}

type KnowledgeConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
	TopK         int `toml:"top_k"`
}

type UploadConfig struct {
	MaxPDFMB int `toml:"max_pdf_mb"`
}

type SearchConfig struct {
	MaxResults int     `toml:"max_results"`
	RateLimit  float64 `toml:"rate_limit"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinute) * time.Minute
}

func (c *Config) MaxPDFBytes() int64 {
	return int64(c.Upload.MaxPDFMB) << 20
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "legalteam",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Session: SessionConfig{
			TokenSecret: "change-me-in-production",
			TTLMinute:   120,
		},
		LLM: LLMConfig{
			DefaultBaseURL: "https://api.zhizengzeng.com/v1",
			Model:          "gpt-4.1",
			EmbeddingModel: "text-embedding-3-small",
			Temperature:    0.7,
			MaxTokens:      2000,
			RateLimit:      2.0,
		},
		Vector: VectorConfig{
			Collection: "legal_documents",
		},
		Knowledge: KnowledgeConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			TopK:         5,
		},
		Upload: UploadConfig{
			MaxPDFMB: 10,
		},
		Search: SearchConfig{
			MaxResults: 5,
			RateLimit:  1.0,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Session.TokenSecret = getEnv("SESSION_TOKEN_SECRET", cfg.Session.TokenSecret)
	cfg.Session.TTLMinute = getEnvAsInt("SESSION_TTL_MINUTE", cfg.Session.TTLMinute)

	cfg.LLM.DefaultBaseURL = getEnv("LLM_DEFAULT_BASE_URL", cfg.LLM.DefaultBaseURL)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.EmbeddingModel = getEnv("LLM_EMBEDDING_MODEL", cfg.LLM.EmbeddingModel)
	cfg.LLM.MaxTokens = getEnvAsInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)

	cfg.Vector.Collection = getEnv("VECTOR_COLLECTION", cfg.Vector.Collection)

	cfg.Knowledge.ChunkSize = getEnvAsInt("KNOWLEDGE_CHUNK_SIZE", cfg.Knowledge.ChunkSize)
	cfg.Knowledge.ChunkOverlap = getEnvAsInt("KNOWLEDGE_CHUNK_OVERLAP", cfg.Knowledge.ChunkOverlap)
	cfg.Knowledge.TopK = getEnvAsInt("KNOWLEDGE_TOP_K", cfg.Knowledge.TopK)

	cfg.Upload.MaxPDFMB = getEnvAsInt("UPLOAD_MAX_PDF_MB", cfg.Upload.MaxPDFMB)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
