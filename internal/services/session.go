package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundfield/attune-backend/internal/data/repos"
	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/domain/tuning"
	"github.com/soundfield/attune-backend/internal/platform/apierr"
	"github.com/soundfield/attune-backend/internal/platform/logger"
	"github.com/soundfield/attune-backend/internal/requestdata"
)

// historyLimit caps how many sessions a user's history listing returns.
const historyLimit = 50

type SessionService interface {
	SaveSession(ctx context.Context, s *types.TuningSession) error
	ListUserSessions(ctx context.Context) ([]*types.TuningSession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*types.TuningSession, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.TuningSessionRepo
}

func NewSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.TuningSessionRepo) SessionService {
	serviceLog := log.With("service", "SessionService")
	return &sessionService{
		db:          db,
		log:         serviceLog,
		sessionRepo: sessionRepo,
	}
}

func (ss *sessionService) currentUserID(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("no authenticated user in context"))
	}
	return rd.UserID, nil
}

// SaveSession persists a session snapshot, inserting or overwriting by
// session id.
func (ss *sessionService) SaveSession(ctx context.Context, s *types.TuningSession) error {
	row, err := tuning.ToRow(s)
	if err != nil {
		return fmt.Errorf("flatten session: %w", err)
	}
	if _, err := ss.sessionRepo.Upsert(ctx, nil, []*types.TuningSessionRow{row}); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (ss *sessionService) ListUserSessions(ctx context.Context) ([]*types.TuningSession, error) {
	userID, err := ss.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := ss.sessionRepo.ListByUserID(ctx, nil, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]*types.TuningSession, 0, len(rows))
	for _, row := range rows {
		s, err := tuning.FromRow(row)
		if err != nil {
			ss.log.Warn("Skipping undecodable session row", "session_id", row.ID.String(), "error", err)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (ss *sessionService) GetSession(ctx context.Context, sessionID uuid.UUID) (*types.TuningSession, error) {
	userID, err := ss.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := ss.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	// Ownership is part of existence; another user's session 404s rather
	// than 403s.
	if len(rows) == 0 || rows[0].UserID == nil || *rows[0].UserID != userID {
		return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("session not found"))
	}
	return tuning.FromRow(rows[0])
}

func (ss *sessionService) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	userID, err := ss.currentUserID(ctx)
	if err != nil {
		return err
	}
	n, err := ss.sessionRepo.SoftDeleteByIDForUser(ctx, nil, sessionID, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("session not found"))
	}
	return nil
}
