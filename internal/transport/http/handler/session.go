package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"legalteam/internal/app"
	"legalteam/internal/pkg/jwtutil"
	"legalteam/internal/session"
	"legalteam/internal/transport/http/middleware"
	"legalteam/internal/transport/http/response"
)

type SessionHandler struct {
	sessionService *app.SessionService
	tokenSecret    string
	tokenTTL       time.Duration
	defaultBaseURL string
}

type UpdateCredentialsRequest struct {
	ModelAPIKey    string `json:"model_api_key"`
	ModelBaseURL   string `json:"model_base_url"`
	VectorDBAPIKey string `json:"vector_db_api_key"`
	VectorDBURL    string `json:"vector_db_url"`
}

func NewSessionHandler(sessionService *app.SessionService, tokenSecret string, tokenTTL time.Duration, defaultBaseURL string) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		tokenSecret:    tokenSecret,
		tokenTTL:       tokenTTL,
		defaultBaseURL: defaultBaseURL,
	}
}

// Create opens a fresh session and returns its bearer token. Everything the
// session accumulates later lives server-side; the client only keeps the
// token.
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.sessionService.Create()

	token, err := jwtutil.GenerateToken(h.tokenSecret, sess.ID, h.tokenTTL)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "issue session token failed")
		return
	}

	response.OK(c, gin.H{
		"session_id":             sess.ID,
		"token":                  token,
		"state":                  sess.State(),
		"default_model_base_url": h.defaultBaseURL,
	})
}

func (h *SessionHandler) UpdateCredentials(c *gin.Context) {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req UpdateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	_, err := h.sessionService.Configure(sessionID, session.Credentials{
		ModelAPIKey:    req.ModelAPIKey,
		ModelBaseURL:   req.ModelBaseURL,
		VectorDBAPIKey: req.VectorDBAPIKey,
		VectorDBURL:    req.VectorDBURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, app.ErrOperationInProgress):
			response.Error(c, http.StatusConflict, response.CodeOperationInProgress, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update credentials failed")
		}
		return
	}

	status, err := h.sessionService.Status(sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load session status failed")
		return
	}
	response.OK(c, status)
}

func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	status, err := h.sessionService.Status(sessionID)
	if err != nil {
		if errors.Is(err, app.ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load session status failed")
		}
		return
	}
	response.OK(c, status)
}

func getSessionIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextSessionIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
