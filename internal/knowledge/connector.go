package knowledge

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/vectorstores"
	"github.com/tmc/langchaingo/vectorstores/qdrant"
)

const DefaultCollection = "legal_documents"

var ErrMissingVectorCredentials = errors.New("vector db url and api key are required")

// Connector is the thin handle to one Qdrant collection. It holds the
// validated endpoint and key; the store itself is opened later, once a
// session embedder exists, because embeddings need the model credentials.
type Connector struct {
	endpoint   url.URL
	apiKey     string
	collection string
}

type ConnectorConfig struct {
	URL        string
	APIKey     string
	Collection string
}

// NewConnector validates the vector-db credentials and parses the endpoint.
// Both URL and API key must be non-empty; anything beyond that only fails at
// the first real call.
func NewConnector(cfg ConnectorConfig) (*Connector, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, ErrMissingVectorCredentials
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	endpoint, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse vector db url failed: %w", err)
	}
	return &Connector{
		endpoint:   *endpoint,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
	}, nil
}

func (c *Connector) Collection() string {
	return c.collection
}

// Open binds the collection to an embedding function and returns the vector
// store used by the knowledge base and the agents.
func (c *Connector) Open(embedder embeddings.Embedder) (vectorstores.VectorStore, error) {
	store, err := qdrant.New(
		qdrant.WithURL(c.endpoint),
		qdrant.WithAPIKey(c.apiKey),
		qdrant.WithCollectionName(c.collection),
		qdrant.WithEmbedder(embedder),
	)
	if err != nil {
		return nil, fmt.Errorf("open vector store failed: %w", err)
	}
	return store, nil
}
