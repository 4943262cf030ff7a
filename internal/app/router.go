package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/soundfield/attune-backend/internal/http"
	"github.com/soundfield/attune-backend/internal/observability"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware, clients Clients) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:            log,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		CatalogHandler: handlers.Catalog,
		TuningHandler:  handlers.Tuning,
		SessionHandler: handlers.Session,
		HealthHandler:  handlers.Health,
		Media:          clients.Media,
		Tracing:        observability.Enabled(),
	})
}
