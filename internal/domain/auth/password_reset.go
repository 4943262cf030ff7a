package auth

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use token minted by a password-reset
// request. Delivery (email) is out of scope; the token is returned to the
// operator-facing log only.
type PasswordResetToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"index;not null" json:"user_id"`
	Token     string     `gorm:"uniqueIndex;not null;column:token" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;column:expires_at" json:"expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (PasswordResetToken) TableName() string { return "password_reset_token" }
