package app

import (
	"context"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"legalteam/internal/agents"
	"legalteam/internal/analysis"
	"legalteam/internal/config"
	"legalteam/internal/session"
)

// AnalysisService drives the three-stage pipeline: main analysis, key
// points, recommendations. Each stage is a full team run; stages two and
// three reuse the first stage's content.
type AnalysisService struct {
	sessions *session.Store
	cfg      *config.Config
	log      *zap.Logger
}

func NewAnalysisService(sessions *session.Store, cfg *config.Config, log *zap.Logger) *AnalysisService {
	return &AnalysisService{sessions: sessions, cfg: cfg, log: log}
}

// Categories lists the supported analysis types in presentation order.
func (s *AnalysisService) Categories() []analysis.Info {
	return analysis.Infos()
}

// Run executes one analysis. Any stage failure discards the whole run: the
// previous report stays untouched and the session returns to ready, never
// exposing partial results.
func (s *AnalysisService) Run(ctx context.Context, sessionID, category, question string) (*analysis.Report, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !sess.BeginAction() {
		return nil, ErrOperationInProgress
	}
	defer sess.EndAction()

	state := sess.State()
	if state != session.StateReady && state != session.StateResultsDisplayed {
		return nil, ErrNotReady
	}
	team := sess.Team()
	if team == nil {
		return nil, ErrNotReady
	}

	if _, _, found := analysis.Lookup(category); !found {
		return nil, ErrUnknownCategory
	}
	task, err := analysis.BuildTask(category, question)
	if err != nil {
		return nil, ErrEmptyQuestion
	}

	s.exportModelEnv(sess.Credentials())
	sess.SetState(session.StateRunning)

	s.log.Info("analysis started",
		zap.String("session_id", sess.ID),
		zap.String("category", string(task.Category)))

	main, err := team.Run(ctx, task.MainPrompt())
	if err != nil {
		return nil, s.fail(sess, "main analysis", err)
	}
	content := resultContent(main)

	keyPoints, err := team.Run(ctx, task.KeyPointsPrompt(content))
	if err != nil {
		return nil, s.fail(sess, "key points", err)
	}

	recommendations, err := team.Run(ctx, task.RecommendationsPrompt(content))
	if err != nil {
		return nil, s.fail(sess, "recommendations", err)
	}

	report := &analysis.Report{
		Category:        task.Category,
		Query:           task.Query,
		Agents:          task.Agents,
		Analysis:        content,
		KeyPoints:       resultContent(keyPoints),
		Recommendations: resultContent(recommendations),
		Messages:        main.Messages,
		GeneratedAt:     time.Now(),
	}
	sess.SetReport(report)
	sess.SetState(session.StateResultsDisplayed)

	s.log.Info("analysis completed",
		zap.String("session_id", sess.ID),
		zap.String("category", string(task.Category)))
	return report, nil
}

func (s *AnalysisService) fail(sess *session.Session, stage string, err error) error {
	sess.SetState(session.StateReady)
	s.log.Error("analysis stage failed",
		zap.String("session_id", sess.ID),
		zap.String("stage", stage),
		zap.Error(err))
	return err
}

func (s *AnalysisService) exportModelEnv(creds session.Credentials) {
	os.Setenv("OPENAI_API_KEY", creds.ModelAPIKey)
	baseURL := creds.ModelBaseURL
	if baseURL == "" {
		baseURL = s.cfg.LLM.DefaultBaseURL
	}
	os.Setenv("OPENAI_BASE_URL", baseURL)
}

// resultContent prefers the coordinator's synthesized answer and falls back
// to the concatenated member outputs when it is empty.
func resultContent(r *agents.RunResult) string {
	if strings.TrimSpace(r.Content) != "" {
		return r.Content
	}
	var parts []string
	for _, m := range r.Messages {
		if m.Role == "assistant" && strings.TrimSpace(m.Content) != "" {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
