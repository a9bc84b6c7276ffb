// Package session holds per-user conversational state. Every browser session
// owns its own credentials, knowledge base, agent team and latest report;
// nothing is shared between sessions and nothing survives a restart.
package session

import (
	"context"
	"sync"
	"time"

	"legalteam/internal/agents"
	"legalteam/internal/analysis"
	"legalteam/internal/knowledge"
)

// State tracks where a session is in the credentials/upload/analysis flow.
type State string

const (
	StateAwaitingCredentials State = "awaiting_credentials"
	StateAwaitingUpload      State = "awaiting_upload"
	StateReady               State = "ready"
	StateRunning             State = "running"
	StateResultsDisplayed    State = "results_displayed"
)

// Credentials are the user-supplied service secrets for one session.
type Credentials struct {
	ModelAPIKey    string
	ModelBaseURL   string
	VectorDBAPIKey string
	VectorDBURL    string
}

// KnowledgeBase is the ingestion and retrieval surface sessions carry.
// *knowledge.Base implements it.
type KnowledgeBase interface {
	agents.Searcher
	AddContent(ctx context.Context, path string) (int, error)
}

// Session is the unit of isolation. The action mutex serializes ingestion
// and analysis, which both mutate the session; the state mutex only guards
// the fields handlers read while an action runs.
type Session struct {
	ID        string
	CreatedAt time.Time

	action sync.Mutex

	mu          sync.RWMutex
	state       State
	credentials Credentials
	connector   *knowledge.Connector
	kb          KnowledgeBase
	team        agents.Runner
	processed   map[string]struct{}
	report      *analysis.Report
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		state:     StateAwaitingCredentials,
		processed: make(map[string]struct{}),
	}
}

// BeginAction claims the session for a mutating operation. It never blocks;
// a false return means another upload or analysis is already in flight.
func (s *Session) BeginAction() bool { return s.action.TryLock() }

func (s *Session) EndAction() { s.action.Unlock() }

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) SetState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentials
}

// MergeCredentials overwrites only the fields the caller supplied, so a
// partial update never blanks a previously entered secret.
func (s *Session) MergeCredentials(c Credentials) Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ModelAPIKey != "" {
		s.credentials.ModelAPIKey = c.ModelAPIKey
	}
	if c.ModelBaseURL != "" {
		s.credentials.ModelBaseURL = c.ModelBaseURL
	}
	if c.VectorDBAPIKey != "" {
		s.credentials.VectorDBAPIKey = c.VectorDBAPIKey
	}
	if c.VectorDBURL != "" {
		s.credentials.VectorDBURL = c.VectorDBURL
	}
	return s.credentials
}

func (s *Session) Connector() *knowledge.Connector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connector
}

func (s *Session) SetConnector(c *knowledge.Connector) {
	s.mu.Lock()
	s.connector = c
	s.mu.Unlock()
}

func (s *Session) Knowledge() KnowledgeBase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kb
}

func (s *Session) Team() agents.Runner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.team
}

// SetPipeline installs a freshly assembled knowledge base and team together.
// Ingestion rebuilds both on every processed document.
func (s *Session) SetPipeline(kb KnowledgeBase, team agents.Runner) {
	s.mu.Lock()
	s.kb = kb
	s.team = team
	s.mu.Unlock()
}

// MarkProcessed records an uploaded filename. It reports false when the
// name was already processed in this session.
func (s *Session) MarkProcessed(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.processed[name]; ok {
		return false
	}
	s.processed[name] = struct{}{}
	return true
}

func (s *Session) IsProcessed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.processed[name]
	return ok
}

func (s *Session) ProcessedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processed)
}

func (s *Session) Report() *analysis.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

func (s *Session) SetReport(r *analysis.Report) {
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
}
