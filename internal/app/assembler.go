package app

import (
	"fmt"

	"legalteam/internal/agents"
	"legalteam/internal/config"
	"legalteam/internal/knowledge"
	"legalteam/internal/llm"
	"legalteam/internal/session"
	"legalteam/internal/tools/websearch"
)

// Assembler builds the per-session knowledge base and agent team from the
// session credentials. Ingestion rebuilds both on every processed document so
// the roster always points at the live vector store.
type Assembler interface {
	Assemble(creds session.Credentials, conn *knowledge.Connector) (session.KnowledgeBase, agents.Runner, error)
}

// PipelineAssembler is the production Assembler wiring the OpenAI-compatible
// client, the Qdrant store and the DuckDuckGo search tool together.
type PipelineAssembler struct {
	cfg *config.Config
}

func NewPipelineAssembler(cfg *config.Config) *PipelineAssembler {
	return &PipelineAssembler{cfg: cfg}
}

func (a *PipelineAssembler) Assemble(creds session.Credentials, conn *knowledge.Connector) (session.KnowledgeBase, agents.Runner, error) {
	baseURL := creds.ModelBaseURL
	if baseURL == "" {
		baseURL = a.cfg.LLM.DefaultBaseURL
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:         creds.ModelAPIKey,
		BaseURL:        baseURL,
		Model:          a.cfg.LLM.Model,
		EmbeddingModel: a.cfg.LLM.EmbeddingModel,
		Temperature:    a.cfg.LLM.Temperature,
		MaxTokens:      a.cfg.LLM.MaxTokens,
		RateLimit:      a.cfg.LLM.RateLimit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build model client failed: %w", err)
	}

	embedder, err := client.Embedder()
	if err != nil {
		return nil, nil, fmt.Errorf("build embedder failed: %w", err)
	}

	store, err := conn.Open(embedder)
	if err != nil {
		return nil, nil, fmt.Errorf("open vector store failed: %w", err)
	}

	kb := knowledge.NewBase(store, knowledge.BaseConfig{
		ChunkSize:    a.cfg.Knowledge.ChunkSize,
		ChunkOverlap: a.cfg.Knowledge.ChunkOverlap,
		TopK:         a.cfg.Knowledge.TopK,
	})

	webTool := websearch.New(websearch.Config{
		MaxResults: a.cfg.Search.MaxResults,
		RateLimit:  a.cfg.Search.RateLimit,
	})

	roster := agents.BuildRoster(client, kb, webTool)
	team := agents.NewTeam(client, kb, roster)
	return kb, team, nil
}
