package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type PasswordResetTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*types.PasswordResetToken) ([]*types.PasswordResetToken, error)
	GetByTokens(ctx context.Context, tx *gorm.DB, tokenValues []string) ([]*types.PasswordResetToken, error)
	MarkUsed(ctx context.Context, tx *gorm.DB, tokenID uuid.UUID, usedAt time.Time) error
	InvalidateActiveForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, usedAt time.Time) error
	FullDeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type passwordResetTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPasswordResetTokenRepo(db *gorm.DB, baseLog *logger.Logger) PasswordResetTokenRepo {
	repoLog := baseLog.With("repo", "PasswordResetTokenRepo")
	return &passwordResetTokenRepo{db: db, log: repoLog}
}

func (prr *passwordResetTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.PasswordResetToken) ([]*types.PasswordResetToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	if len(tokens) == 0 {
		return []*types.PasswordResetToken{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, err
	}

	return tokens, nil
}

func (prr *passwordResetTokenRepo) GetByTokens(ctx context.Context, tx *gorm.DB, tokenValues []string) ([]*types.PasswordResetToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	var results []*types.PasswordResetToken

	if len(tokenValues) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("token IN ?", tokenValues).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (prr *passwordResetTokenRepo) MarkUsed(ctx context.Context, tx *gorm.DB, tokenID uuid.UUID, usedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.PasswordResetToken{}).
		Where("id = ?", tokenID).
		Update("used_at", usedAt).Error
}

func (prr *passwordResetTokenRepo) InvalidateActiveForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, usedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.PasswordResetToken{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", usedAt).Error
}

func (prr *passwordResetTokenRepo) FullDeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = prr.db
	}

	res := transaction.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&types.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
