package http

import (
	"github.com/gin-gonic/gin"

	appsvc "legalteam/internal/app"
	"legalteam/internal/bootstrap"
	"legalteam/internal/transport/http/handler"
	"legalteam/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.GET("/healthz", healthHandler.Check)

	sessionService := appsvc.NewSessionService(app.Sessions, app.Config, app.Logger)
	assembler := appsvc.NewPipelineAssembler(app.Config)
	ingestService := appsvc.NewIngestService(app.Sessions, assembler, app.Config, app.Logger)
	analysisService := appsvc.NewAnalysisService(app.Sessions, app.Config, app.Logger)

	sessionHandler := handler.NewSessionHandler(sessionService, app.Config.Session.TokenSecret, app.Config.SessionTTL(), app.Config.LLM.DefaultBaseURL)
	documentHandler := handler.NewDocumentHandler(ingestService, app.Config.MaxPDFBytes())
	analysisHandler := handler.NewAnalysisHandler(analysisService, sessionService)

	v1 := router.Group("/api/v1")
	v1.POST("/sessions", sessionHandler.Create)
	v1.GET("/categories", analysisHandler.Categories)

	authed := v1.Group("/session")
	authed.Use(middleware.AuthSession(app.Config.Session.TokenSecret))
	authed.GET("", sessionHandler.Get)
	authed.PUT("/credentials", sessionHandler.UpdateCredentials)
	authed.POST("/documents", documentHandler.Upload)
	authed.POST("/analyses", analysisHandler.Run)
	authed.GET("/report", analysisHandler.Report)

	return router
}
