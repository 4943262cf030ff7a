package repos

import (
	"gorm.io/gorm"

	"github.com/soundfield/attune-backend/internal/data/repos/auth"
	"github.com/soundfield/attune-backend/internal/data/repos/session"
	"github.com/soundfield/attune-backend/internal/data/repos/user"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo
type PasswordResetTokenRepo = auth.PasswordResetTokenRepo
type TuningSessionRepo = session.TuningSessionRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}
func NewPasswordResetTokenRepo(db *gorm.DB, baseLog *logger.Logger) PasswordResetTokenRepo {
	return auth.NewPasswordResetTokenRepo(db, baseLog)
}
func NewTuningSessionRepo(db *gorm.DB, baseLog *logger.Logger) TuningSessionRepo {
	return session.NewTuningSessionRepo(db, baseLog)
}
