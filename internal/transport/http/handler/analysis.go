package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalteam/internal/app"
	"legalteam/internal/transport/http/response"
)

type AnalysisHandler struct {
	analysisService *app.AnalysisService
	sessionService  *app.SessionService
}

type RunAnalysisRequest struct {
	Category string `json:"category" binding:"required"`
	Question string `json:"question"`
}

func NewAnalysisHandler(analysisService *app.AnalysisService, sessionService *app.SessionService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, sessionService: sessionService}
}

// Categories lists the supported analysis types. No session is needed; the
// list is static.
func (h *AnalysisHandler) Categories(c *gin.Context) {
	response.OK(c, gin.H{"categories": h.analysisService.Categories()})
}

func (h *AnalysisHandler) Run(c *gin.Context) {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req RunAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	report, err := h.analysisService.Run(c.Request.Context(), sessionID, req.Category, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, app.ErrOperationInProgress):
			response.Error(c, http.StatusConflict, response.CodeOperationInProgress, err.Error())
		case errors.Is(err, app.ErrNotReady):
			response.Error(c, http.StatusBadRequest, response.CodeNotReady, err.Error())
		case errors.Is(err, app.ErrUnknownCategory):
			response.Error(c, http.StatusBadRequest, response.CodeUnknownCategory, err.Error())
		case errors.Is(err, app.ErrEmptyQuestion):
			response.Error(c, http.StatusBadRequest, response.CodeEmptyQuestion, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInvocationFailure, "analysis failed: "+err.Error())
		}
		return
	}

	response.OK(c, report)
}

// Report returns the latest completed report for the session, if any.
func (h *AnalysisHandler) Report(c *gin.Context) {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	sess, err := h.sessionService.Get(sessionID)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		return
	}
	report := sess.Report()
	if report == nil {
		response.Error(c, http.StatusNotFound, response.CodeBadRequest, "no report available yet")
		return
	}
	response.OK(c, report)
}
