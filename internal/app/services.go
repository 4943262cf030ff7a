package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/soundfield/attune-backend/internal/catalog"
	"github.com/soundfield/attune-backend/internal/platform/logger"
	"github.com/soundfield/attune-backend/internal/services"
)

type Services struct {
	Avatar  services.AvatarService
	Auth    services.AuthService
	User    services.UserService
	Session services.SessionService
	Tuning  services.TuningService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, cat *catalog.Catalog) (Services, error) {
	log.Info("Wiring services...")

	avatarService, err := services.NewAvatarService(log, clients.Media)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		repos.PasswordResetToken,
		avatarService,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		cfg.ResetTokenTTL,
	)

	userService := services.NewUserService(db, log, repos.User, avatarService)
	sessionService := services.NewSessionService(db, log, repos.TuningSession)
	tuningService := services.NewTuningService(log, cat, sessionService, clients.History)

	return Services{
		Avatar:  avatarService,
		Auth:    authService,
		User:    userService,
		Session: sessionService,
		Tuning:  tuningService,
	}, nil
}
