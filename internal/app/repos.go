package app

import (
	"gorm.io/gorm"

	"github.com/soundfield/attune-backend/internal/data/repos"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type Repos struct {
	User               repos.UserRepo
	UserToken          repos.UserTokenRepo
	PasswordResetToken repos.PasswordResetTokenRepo
	TuningSession      repos.TuningSessionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		UserToken:          repos.NewUserTokenRepo(db, log),
		PasswordResetToken: repos.NewPasswordResetTokenRepo(db, log),
		TuningSession:      repos.NewTuningSessionRepo(db, log),
	}
}
