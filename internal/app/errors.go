// Package app implements the application services behind the HTTP handlers:
// session lifecycle, document ingestion and the three-stage analysis
// pipeline.
package app

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrOperationInProgress = errors.New("another operation is already in progress")
	ErrMissingModelKey     = errors.New("model api key not configured")
	ErrVectorStoreNotReady = errors.New("vector database not configured")
	ErrPipelineUnavailable = errors.New("analysis pipeline unavailable")
	ErrNotReady            = errors.New("no document has been processed yet")
	ErrUnknownCategory     = errors.New("unknown analysis category")
	ErrEmptyQuestion       = errors.New("custom analysis requires a question")
)
