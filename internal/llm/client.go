// Package llm wraps the OpenAI-compatible model provider behind a
// rate-limited client. Keys and base URLs arrive per session, so a fresh
// client is constructed for each session roster.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

var ErrMissingAPIKey = errors.New("model api key is required")

type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
	RateLimit      float64 // model calls per second
}

type Client struct {
	model       *openai.LLM
	limiter     *rate.Limiter
	temperature float64
	maxTokens   int
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4.1"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2.0
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize model client failed: %w", err)
	}

	return &Client{
		model:       model,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Generate runs one completion over the given messages and returns the first
// choice's text.
func (c *Client) Generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty model response")
	}
	return resp.Choices[0].Content, nil
}

// Embedder exposes the same client as an embedding function for the vector
// store.
func (c *Client) Embedder() (embeddings.Embedder, error) {
	emb, err := embeddings.NewEmbedder(c.model)
	if err != nil {
		return nil, fmt.Errorf("initialize embedder failed: %w", err)
	}
	return emb, nil
}
