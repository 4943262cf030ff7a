package session

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type TuningSessionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rows []*types.TuningSessionRow) ([]*types.TuningSessionRow, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.TuningSessionRow, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.TuningSessionRow, error)
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	SoftDeleteByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (int64, error)
}

type tuningSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTuningSessionRepo(db *gorm.DB, baseLog *logger.Logger) TuningSessionRepo {
	repoLog := baseLog.With("repo", "TuningSessionRepo")
	return &tuningSessionRepo{db: db, log: repoLog}
}

// Upsert writes session snapshots keyed by id. Saves are last-write-wins;
// a completed snapshot overwrites the in-progress one it grew from.
func (tsr *tuningSessionRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*types.TuningSessionRow) ([]*types.TuningSessionRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = tsr.db
	}

	if len(rows) == 0 {
		return []*types.TuningSessionRow{}, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id",
				"selected_domains",
				"answers",
				"results",
				"completed",
				"completed_at",
				"updated_at",
			}),
		}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (tsr *tuningSessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.TuningSessionRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = tsr.db
	}

	var results []*types.TuningSessionRow

	if len(sessionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", sessionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (tsr *tuningSessionRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.TuningSessionRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = tsr.db
	}

	var results []*types.TuningSessionRow

	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (tsr *tuningSessionRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tsr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TuningSessionRow{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SoftDeleteByIDForUser removes a session only when it belongs to the
// given user; the returned count is zero when it does not.
func (tsr *tuningSessionRepo) SoftDeleteByIDForUser(ctx context.Context, tx *gorm.DB, sessionID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tsr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&types.TuningSessionRow{})
	return res.RowsAffected, res.Error
}
