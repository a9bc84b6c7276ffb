package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"legalteam/internal/config"
	"legalteam/internal/session"
)

// IngestService turns an uploaded PDF into knowledge-base chunks and rebuilds
// the session's agent team against the refreshed store.
type IngestService struct {
	sessions  *session.Store
	assembler Assembler
	cfg       *config.Config
	log       *zap.Logger
}

func NewIngestService(sessions *session.Store, assembler Assembler, cfg *config.Config, log *zap.Logger) *IngestService {
	return &IngestService{sessions: sessions, assembler: assembler, cfg: cfg, log: log}
}

// IngestResult reports what happened to one uploaded document.
type IngestResult struct {
	Filename string `json:"filename"`
	Skipped  bool   `json:"skipped"`
	Chunks   int    `json:"chunks"`
}

// Ingest processes one uploaded document. A filename already processed in
// this session is skipped without touching the knowledge base. On any
// failure the session keeps its previous state and the document does not
// count as processed.
func (s *IngestService) Ingest(ctx context.Context, sessionID, filename string, content io.Reader) (*IngestResult, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !sess.BeginAction() {
		return nil, ErrOperationInProgress
	}
	defer sess.EndAction()

	creds := sess.Credentials()
	if creds.ModelAPIKey == "" {
		return nil, ErrMissingModelKey
	}
	conn := sess.Connector()
	if conn == nil {
		return nil, ErrVectorStoreNotReady
	}

	if sess.IsProcessed(filename) {
		s.log.Info("document already processed, skipping",
			zap.String("session_id", sess.ID), zap.String("filename", filename))
		return &IngestResult{Filename: filename, Skipped: true}, nil
	}

	s.exportModelEnv(creds)

	tmp, err := os.CreateTemp("", "legalteam-upload-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file failed: %w", err)
	}
	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file failed: %w", err)
	}

	kb, team, err := s.assembler.Assemble(creds, conn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPipelineUnavailable, err)
	}

	chunks, err := kb.AddContent(ctx, tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("ingest document failed: %w", err)
	}
	os.Remove(tmp.Name())

	sess.SetPipeline(kb, team)
	sess.MarkProcessed(filename)
	sess.SetState(session.StateReady)

	s.log.Info("document ingested",
		zap.String("session_id", sess.ID),
		zap.String("filename", filename),
		zap.Int("chunks", chunks))
	return &IngestResult{Filename: filename, Chunks: chunks}, nil
}

// exportModelEnv mirrors the active model credentials into the process
// environment for provider SDK code paths that only read environment
// variables.
func (s *IngestService) exportModelEnv(creds session.Credentials) {
	os.Setenv("OPENAI_API_KEY", creds.ModelAPIKey)
	baseURL := creds.ModelBaseURL
	if baseURL == "" {
		baseURL = s.cfg.LLM.DefaultBaseURL
	}
	os.Setenv("OPENAI_BASE_URL", baseURL)
}
