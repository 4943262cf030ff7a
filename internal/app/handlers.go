package app

import (
	"github.com/soundfield/attune-backend/internal/catalog"
	httpH "github.com/soundfield/attune-backend/internal/http/handlers"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	User    *httpH.UserHandler
	Catalog *httpH.CatalogHandler
	Tuning  *httpH.TuningHandler
	Session *httpH.SessionHandler
}

func wireHandlers(log *logger.Logger, services Services, cat *catalog.Catalog) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Auth:    httpH.NewAuthHandler(services.Auth),
		User:    httpH.NewUserHandler(services.User),
		Catalog: httpH.NewCatalogHandler(cat),
		Tuning:  httpH.NewTuningHandler(services.Tuning),
		Session: httpH.NewSessionHandler(services.Session),
	}
}
