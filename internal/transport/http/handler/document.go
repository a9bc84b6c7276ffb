package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"legalteam/internal/app"
	"legalteam/internal/transport/http/response"
)

type DocumentHandler struct {
	ingestService *app.IngestService
	maxPDFBytes   int64
}

func NewDocumentHandler(ingestService *app.IngestService, maxPDFBytes int64) *DocumentHandler {
	return &DocumentHandler{ingestService: ingestService, maxPDFBytes: maxPDFBytes}
}

// Upload accepts a multipart form with "file" (PDF) and feeds it into the
// session knowledge base.
func (h *DocumentHandler) Upload(c *gin.Context) {
	sessionID, ok := getSessionIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if h.maxPDFBytes > 0 && file.Size > h.maxPDFBytes {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			fmt.Sprintf("file too large (max %dMB)", h.maxPDFBytes>>20))
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	result, err := h.ingestService.Ingest(c.Request.Context(), sessionID, file.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, app.ErrOperationInProgress):
			response.Error(c, http.StatusConflict, response.CodeOperationInProgress, err.Error())
		case errors.Is(err, app.ErrMissingModelKey), errors.Is(err, app.ErrVectorStoreNotReady):
			response.Error(c, http.StatusBadRequest, response.CodeConfigurationMissing, err.Error())
		case errors.Is(err, app.ErrPipelineUnavailable):
			response.Error(c, http.StatusBadGateway, response.CodeConnectionFailure, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeIngestionFailure, "ingest failed: "+err.Error())
		}
		return
	}

	response.OK(c, result)
}
