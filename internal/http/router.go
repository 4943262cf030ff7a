package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/soundfield/attune-backend/internal/http/handlers"
	httpMW "github.com/soundfield/attune-backend/internal/http/middleware"
	"github.com/soundfield/attune-backend/internal/platform/localmedia"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	CatalogHandler *httpH.CatalogHandler
	TuningHandler  *httpH.TuningHandler
	SessionHandler *httpH.SessionHandler
	HealthHandler  *httpH.HealthHandler

	Media   localmedia.Store
	Tracing bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware("attune-backend"))
	}
	r.Use(httpMW.CORS())
	r.Use(httpMW.AttachClientKey())
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Generated avatars are plain files on disk.
	if cfg.Media != nil && strings.HasPrefix(cfg.Media.BaseURL(), "/") {
		r.Static(cfg.Media.BaseURL(), cfg.Media.Root())
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
			api.POST("/password-reset", cfg.AuthHandler.RequestPasswordReset)
			api.POST("/password-update", cfg.AuthHandler.UpdatePassword)
		}

		// Catalog (public)
		if cfg.CatalogHandler != nil {
			api.GET("/catalog/questions", cfg.CatalogHandler.ListQuestions)
			api.GET("/catalog/notes", cfg.CatalogHandler.ListNotes)
			api.GET("/catalog/domains", cfg.CatalogHandler.ListDomains)
		}
	}

	// Tuning runs for anonymous and signed-in clients alike; a valid
	// token attaches the user so completed sessions persist.
	if cfg.TuningHandler != nil {
		tuning := api.Group("/tuning")
		if cfg.AuthMiddleware != nil {
			tuning.Use(cfg.AuthMiddleware.OptionalAuth())
		}
		tuning.POST("/start", cfg.TuningHandler.Start)
		tuning.GET("/state", cfg.TuningHandler.State)
		tuning.POST("/answer", cfg.TuningHandler.Answer)
		tuning.POST("/next", cfg.TuningHandler.Next)
		tuning.POST("/previous", cfg.TuningHandler.Previous)
		tuning.POST("/complete", cfg.TuningHandler.Complete)
		tuning.POST("/reset", cfg.TuningHandler.Reset)
		tuning.GET("/history", cfg.TuningHandler.History)
		tuning.DELETE("/history", cfg.TuningHandler.ClearHistory)
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/user/name", cfg.UserHandler.ChangeName)
		}

		// Saved sessions
		if cfg.SessionHandler != nil {
			protected.GET("/sessions", cfg.SessionHandler.ListUserSessions)
			protected.GET("/sessions/:id", cfg.SessionHandler.GetSession)
			protected.DELETE("/sessions/:id", cfg.SessionHandler.DeleteSession)
		}
	}

	return r
}
