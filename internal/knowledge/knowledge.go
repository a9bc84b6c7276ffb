// Package knowledge turns uploaded documents into an embedded, searchable
// collection: extract text, split into chunks, store, retrieve by similarity.
package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/tmc/langchaingo/vectorstores"

	"legalteam/internal/pkg/pdfextract"
)

type BaseConfig struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

// Base is the knowledge base over one vector store collection.
type Base struct {
	store    vectorstores.VectorStore
	splitter textsplitter.RecursiveCharacter
	topK     int
}

func NewBase(store vectorstores.VectorStore, cfg BaseConfig) *Base {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 5
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	return &Base{
		store: store,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
		),
		topK: cfg.TopK,
	}
}

// AddContent extracts text from the PDF at path, chunks it, and stores the
// chunks. Embedding happens inside the vector store. There is no rollback:
// a failure mid-batch can leave partial chunks behind.
func (b *Base) AddContent(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open document failed: %w", err)
	}
	defer f.Close()

	text, err := pdfextract.ExtractText(f)
	if err != nil {
		return 0, fmt.Errorf("extract document text failed: %w", err)
	}
	return b.AddText(ctx, filepath.Base(path), text)
}

// AddText chunks raw text under the given source name and stores it.
func (b *Base) AddText(ctx context.Context, source, text string) (int, error) {
	chunks, err := b.splitter.SplitText(text)
	if err != nil {
		return 0, fmt.Errorf("split document failed: %w", err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document produced no chunks")
	}

	docs := make([]schema.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = schema.Document{
			PageContent: chunk,
			Metadata: map[string]any{
				"source": source,
				"chunk":  i,
			},
		}
	}
	if _, err := b.store.AddDocuments(ctx, docs); err != nil {
		return 0, fmt.Errorf("store document chunks failed: %w", err)
	}
	return len(docs), nil
}

// Search returns the top-k chunks most similar to the query.
func (b *Base) Search(ctx context.Context, query string) ([]schema.Document, error) {
	docs, err := b.store.SimilaritySearch(ctx, query, b.topK)
	if err != nil {
		return nil, fmt.Errorf("knowledge search failed: %w", err)
	}
	return docs, nil
}
