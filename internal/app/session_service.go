package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"legalteam/internal/config"
	"legalteam/internal/knowledge"
	"legalteam/internal/session"
)

// SessionService creates sessions and manages their credentials and derived
// state transitions.
type SessionService struct {
	sessions *session.Store
	cfg      *config.Config
	log      *zap.Logger
}

func NewSessionService(sessions *session.Store, cfg *config.Config, log *zap.Logger) *SessionService {
	return &SessionService{sessions: sessions, cfg: cfg, log: log}
}

func (s *SessionService) Create() *session.Session {
	sess := s.sessions.Create()
	s.log.Info("session created", zap.String("session_id", sess.ID))
	return sess
}

func (s *SessionService) Get(id string) (*session.Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Configure merges the supplied credentials into the session. The vector
// store connector is built exactly once, as soon as both the vector database
// URL and its key are known; the embedder is bound later, during ingestion,
// because it needs the model key.
func (s *SessionService) Configure(id string, creds session.Credentials) (*session.Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !sess.BeginAction() {
		return nil, ErrOperationInProgress
	}
	defer sess.EndAction()

	merged := sess.MergeCredentials(creds)

	if sess.Connector() == nil && merged.VectorDBURL != "" && merged.VectorDBAPIKey != "" {
		conn, err := knowledge.NewConnector(knowledge.ConnectorConfig{
			URL:        merged.VectorDBURL,
			APIKey:     merged.VectorDBAPIKey,
			Collection: s.cfg.Vector.Collection,
		})
		if err != nil {
			return nil, fmt.Errorf("configure vector store failed: %w", err)
		}
		sess.SetConnector(conn)
		s.log.Info("vector store connector configured",
			zap.String("session_id", sess.ID),
			zap.String("collection", conn.Collection()))
	}

	if sess.State() == session.StateAwaitingCredentials &&
		merged.ModelAPIKey != "" && sess.Connector() != nil {
		sess.SetState(session.StateAwaitingUpload)
	}
	return sess, nil
}

// Status is the read-only session snapshot handlers return. Secrets never
// leave the server; only their presence is reported.
type Status struct {
	ID                 string    `json:"id"`
	State              string    `json:"state"`
	CreatedAt          time.Time `json:"created_at"`
	ModelConfigured    bool      `json:"model_configured"`
	VectorConfigured   bool      `json:"vector_configured"`
	DocumentsProcessed int       `json:"documents_processed"`
	HasReport          bool      `json:"has_report"`
}

func (s *SessionService) Status(id string) (*Status, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	creds := sess.Credentials()
	return &Status{
		ID:                 sess.ID,
		State:              string(sess.State()),
		CreatedAt:          sess.CreatedAt,
		ModelConfigured:    creds.ModelAPIKey != "",
		VectorConfigured:   sess.Connector() != nil,
		DocumentsProcessed: sess.ProcessedCount(),
		HasReport:          sess.Report() != nil,
	}, nil
}
