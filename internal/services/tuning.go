package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soundfield/attune-backend/internal/catalog"
	redisclient "github.com/soundfield/attune-backend/internal/clients/redis"
	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/platform/apierr"
	"github.com/soundfield/attune-backend/internal/platform/logger"
	"github.com/soundfield/attune-backend/internal/requestdata"
	"github.com/soundfield/attune-backend/internal/tuning"
)

const saveTimeout = 10 * time.Second

// TuningState is the client-facing snapshot of a quiz in progress.
type TuningState struct {
	Phase           types.TuningPhase    `json:"phase"`
	Session         *types.TuningSession `json:"session,omitempty"`
	CurrentQuestion *types.Question      `json:"current_question,omitempty"`
	Index           int                  `json:"index"`
	Total           int                  `json:"total"`
	IsFirst         bool                 `json:"is_first"`
	IsLast          bool                 `json:"is_last"`
	Answered        bool                 `json:"answered"`
	NoteInvitation  string               `json:"note_invitation,omitempty"`
}

type TuningService interface {
	Start(ctx context.Context, domains []types.Domain) (*TuningState, error)
	State(ctx context.Context) (*TuningState, error)
	Answer(ctx context.Context, questionID, optionID string) (*TuningState, error)
	Next(ctx context.Context) (*TuningState, error)
	Previous(ctx context.Context) (*TuningState, error)
	Complete(ctx context.Context) (*types.TuningSession, error)
	Reset(ctx context.Context) error
	History(ctx context.Context) ([]*types.TuningSession, error)
	ClearHistory(ctx context.Context) error
}

type trackerEntry struct {
	tracker  *tuning.Tracker
	lastSeen time.Time
}

type tuningService struct {
	log            *logger.Logger
	catalog        *catalog.Catalog
	sessionService SessionService
	history        redisclient.HistoryStore

	mu       sync.Mutex
	trackers map[string]*trackerEntry

	idleTTL time.Duration
}

// NewTuningService wires the quiz core behind per-client state. history
// may be nil; completed-session history then lives only in process
// memory.
func NewTuningService(log *logger.Logger, cat *catalog.Catalog, sessionService SessionService, history redisclient.HistoryStore) TuningService {
	serviceLog := log.With("service", "TuningService")
	return &tuningService{
		log:            serviceLog,
		catalog:        cat,
		sessionService: sessionService,
		history:        history,
		trackers:       make(map[string]*trackerEntry),
		idleTTL:        24 * time.Hour,
	}
}

func (ts *tuningService) identity(ctx context.Context) (clientKey string, userID *uuid.UUID, err error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.ClientKey == "" {
		return "", nil, apierr.New(http.StatusBadRequest, "missing_client_key", fmt.Errorf("no client key in request"))
	}
	if rd.UserID != uuid.Nil {
		id := rd.UserID
		return rd.ClientKey, &id, nil
	}
	return rd.ClientKey, nil, nil
}

// getTracker returns the client's tracker, creating it on first touch.
// Callers must hold ts.mu for the whole operation.
func (ts *tuningService) getTracker(clientKey string) *tuning.Tracker {
	now := time.Now()
	entry, ok := ts.trackers[clientKey]
	if !ok {
		entry = &trackerEntry{tracker: tuning.NewTracker(ts.catalog)}
		ts.trackers[clientKey] = entry
		ts.sweepIdleLocked(now)
	}
	entry.lastSeen = now
	return entry.tracker
}

func (ts *tuningService) sweepIdleLocked(now time.Time) {
	for key, entry := range ts.trackers {
		if now.Sub(entry.lastSeen) > ts.idleTTL {
			delete(ts.trackers, key)
		}
	}
}

func (ts *tuningService) snapshot(tr *tuning.Tracker) *TuningState {
	index, total := tr.Progress()
	state := &TuningState{
		Phase:   tr.Phase(),
		Session: tr.Session(),
		Index:   index,
		Total:   total,
		IsFirst: tr.IsFirst(),
		IsLast:  tr.IsLast(),
	}
	if q := tr.CurrentQuestion(); q != nil {
		qCopy := *q
		state.CurrentQuestion = &qCopy
		state.Answered = tr.HasAnsweredCurrent()
		state.NoteInvitation = catalog.NoteInvitation(q.Note)
	}
	return state
}

func (ts *tuningService) Start(ctx context.Context, domains []types.Domain) (*TuningState, error) {
	clientKey, userID, err := ts.identity(ctx)
	if err != nil {
		return nil, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	tr := ts.getTracker(clientKey)
	if _, err := tr.Start(userID, domains, time.Now()); err != nil {
		if errors.Is(err, tuning.ErrEmptySelection) {
			return nil, apierr.New(http.StatusBadRequest, "empty_selection", err)
		}
		return nil, apierr.New(http.StatusBadRequest, "invalid_domains", err)
	}
	return ts.snapshot(tr), nil
}

func (ts *tuningService) State(ctx context.Context) (*TuningState, error) {
	clientKey, _, err := ts.identity(ctx)
	if err != nil {
		return nil, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.snapshot(ts.getTracker(clientKey)), nil
}

func (ts *tuningService) Answer(ctx context.Context, questionID, optionID string) (*TuningState, error) {
	clientKey, _, err := ts.identity(ctx)
	if err != nil {
		return nil, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	tr := ts.getTracker(clientKey)
	if err := tr.Answer(questionID, optionID, time.Now()); err != nil {
		switch {
		case errors.Is(err, tuning.ErrNoActiveSession):
			return nil, apierr.New(http.StatusConflict, "no_active_session", err)
		case errors.Is(err, tuning.ErrUnknownQuestion), errors.Is(err, tuning.ErrUnknownOption):
			return nil, apierr.New(http.StatusBadRequest, "invalid_answer", err)
		default:
			return nil, err
		}
	}
	return ts.snapshot(tr), nil
}

func (ts *tuningService) Next(ctx context.Context) (*TuningState, error) {
	return ts.move(ctx, (*tuning.Tracker).Next)
}

func (ts *tuningService) Previous(ctx context.Context) (*TuningState, error) {
	return ts.move(ctx, (*tuning.Tracker).Previous)
}

func (ts *tuningService) move(ctx context.Context, step func(*tuning.Tracker) error) (*TuningState, error) {
	clientKey, _, err := ts.identity(ctx)
	if err != nil {
		return nil, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	tr := ts.getTracker(clientKey)
	if err := step(tr); err != nil {
		return nil, apierr.New(http.StatusConflict, "no_active_session", err)
	}
	return ts.snapshot(tr), nil
}

func (ts *tuningService) Complete(ctx context.Context) (*types.TuningSession, error) {
	clientKey, _, err := ts.identity(ctx)
	if err != nil {
		return nil, err
	}

	ts.mu.Lock()
	tr := ts.getTracker(clientKey)
	alreadyDone := tr.Phase() == types.PhaseResults
	done, err := tr.Complete(time.Now())
	ts.mu.Unlock()
	if err != nil {
		return nil, apierr.New(http.StatusConflict, "no_active_session", err)
	}

	// Persistence is fire and forget; the client already has its results
	// and a failed save must not take them away. A repeated complete
	// (client retry) returns the stored result without persisting again,
	// so the redis history list never collects duplicates.
	if !alreadyDone {
		go ts.persistCompleted(clientKey, done.Clone())
	}

	return done, nil
}

func (ts *tuningService) persistCompleted(clientKey string, s *types.TuningSession) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if s.UserID != nil {
		if err := ts.sessionService.SaveSession(ctx, s); err != nil {
			ts.log.Warn("Failed to save completed session", "session_id", s.ID.String(), "error", err)
		}
	}
	if ts.history != nil {
		if err := ts.history.Push(ctx, clientKey, s); err != nil {
			ts.log.Warn("Failed to push session history", "client_id", clientKey, "error", err)
		}
	}
}

func (ts *tuningService) Reset(ctx context.Context) error {
	clientKey, _, err := ts.identity(ctx)
	if err != nil {
		return err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.getTracker(clientKey).Reset()
	return nil
}

// History lists the client's completed sessions, newest first. The redis
// list is authoritative when configured; otherwise the in-memory tracker
// history serves.
func (ts *tuningService) History(ctx context.Context) ([]*types.TuningSession, error) {
	clientKey, _, err := ts.identity(ctx)
	if err != nil {
		return nil, err
	}

	if ts.history != nil {
		return ts.history.List(ctx, clientKey)
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.getTracker(clientKey).History(), nil
}

func (ts *tuningService) ClearHistory(ctx context.Context) error {
	clientKey, _, err := ts.identity(ctx)
	if err != nil {
		return err
	}

	if ts.history != nil {
		if err := ts.history.Clear(ctx, clientKey); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.getTracker(clientKey).ClearHistory()
	return nil
}
