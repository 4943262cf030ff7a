package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/soundfield/attune-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},
		&types.PasswordResetToken{},

		// Quiz sessions
		&types.TuningSessionRow{},
	)
}

// EnsureIndexes adds the indexes AutoMigrate cannot express. Postgres only.
func EnsureIndexes(db *gorm.DB) error {
	// History listing per user, newest first.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tuning_session_user_created
		ON tuning_session (user_id, created_at DESC)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_tuning_session_user_created: %w", err)
	}

	// Expiry sweeps.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_user_token_expires_at ON user_token(expires_at);`).Error; err != nil {
		return fmt.Errorf("create idx_user_token_expires_at: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_password_reset_token_expires_at ON password_reset_token(expires_at);`).Error; err != nil {
		return fmt.Errorf("create idx_password_reset_token_expires_at: %w", err)
	}

	// One active reset token per user.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_password_reset_token_user_active
		ON password_reset_token (user_id)
		WHERE used_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_password_reset_token_user_active: %w", err)
	}
	return nil
}
