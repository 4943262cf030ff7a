package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/soundfield/attune-backend/internal/catalog"
	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/platform/logger"
	"github.com/soundfield/attune-backend/internal/requestdata"
)

type fakeSessionService struct {
	saved chan *types.TuningSession
}

func newFakeSessionService() *fakeSessionService {
	return &fakeSessionService{saved: make(chan *types.TuningSession, 8)}
}

func (f *fakeSessionService) SaveSession(_ context.Context, s *types.TuningSession) error {
	f.saved <- s
	return nil
}
func (f *fakeSessionService) ListUserSessions(context.Context) ([]*types.TuningSession, error) {
	return nil, nil
}
func (f *fakeSessionService) GetSession(context.Context, uuid.UUID) (*types.TuningSession, error) {
	return nil, nil
}
func (f *fakeSessionService) DeleteSession(context.Context, uuid.UUID) error { return nil }

// memoryHistoryStore records pushes so tests can count persistence calls.
type memoryHistoryStore struct {
	mu      sync.Mutex
	entries map[string][]*types.TuningSession
}

func newMemoryHistoryStore() *memoryHistoryStore {
	return &memoryHistoryStore{entries: make(map[string][]*types.TuningSession)}
}

func (m *memoryHistoryStore) Push(_ context.Context, clientKey string, s *types.TuningSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[clientKey] = append([]*types.TuningSession{s}, m.entries[clientKey]...)
	return nil
}

func (m *memoryHistoryStore) List(_ context.Context, clientKey string) ([]*types.TuningSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.TuningSession(nil), m.entries[clientKey]...), nil
}

func (m *memoryHistoryStore) Clear(_ context.Context, clientKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, clientKey)
	return nil
}

func (m *memoryHistoryStore) Close() error { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func clientCtx(clientKey string, userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		ClientKey: clientKey,
		UserID:    userID,
	})
}

func newTuningService(t *testing.T, saver SessionService) TuningService {
	t.Helper()
	return NewTuningService(testLogger(t), catalog.MustLoad(), saver, nil)
}

func TestTuningRequiresClientKey(t *testing.T) {
	svc := newTuningService(t, newFakeSessionService())
	if _, err := svc.Start(context.Background(), []types.Domain{types.DomainBody}); err == nil {
		t.Fatal("Start without client key should fail")
	}
	if _, err := svc.State(clientCtx("", uuid.Nil)); err == nil {
		t.Fatal("State with empty client key should fail")
	}
}

func TestTuningFlow(t *testing.T) {
	saver := newFakeSessionService()
	svc := newTuningService(t, saver)
	userID := uuid.New()
	ctx := clientCtx("client-1", userID)

	state, err := svc.Start(ctx, []types.Domain{types.DomainBody})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if state.Phase != types.PhaseTuning || state.CurrentQuestion == nil {
		t.Fatalf("start state = %+v", state)
	}
	if state.Total == 0 || state.Index != 0 || !state.IsFirst {
		t.Fatalf("start progress = %d/%d", state.Index, state.Total)
	}
	if state.NoteInvitation == "" {
		t.Error("start state missing note invitation")
	}

	// Answer every question, walking forward.
	for {
		state, err = svc.State(ctx)
		if err != nil {
			t.Fatal(err)
		}
		q := state.CurrentQuestion
		if q == nil {
			t.Fatal("no current question mid-session")
		}
		if state, err = svc.Answer(ctx, q.ID, q.Options[0].ID); err != nil {
			t.Fatalf("Answer %s: %v", q.ID, err)
		}
		if !state.Answered {
			t.Fatalf("question %s not marked answered", q.ID)
		}
		if state.IsLast {
			break
		}
		if _, err = svc.Next(ctx); err != nil {
			t.Fatal(err)
		}
	}

	done, err := svc.Complete(ctx)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Results == nil || !done.Completed {
		t.Fatalf("completed session missing results: %+v", done)
	}
	if done.UserID == nil || *done.UserID != userID {
		t.Errorf("completed session user = %v, want %s", done.UserID, userID)
	}

	select {
	case saved := <-saver.saved:
		if saved.ID != done.ID {
			t.Errorf("saved session %s, want %s", saved.ID, done.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completed session was never saved")
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].ID != done.ID {
		t.Errorf("history = %d entries", len(history))
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	state, err = svc.State(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if state.Phase != types.PhaseWelcome || state.Session != nil {
		t.Errorf("after reset state = %+v", state)
	}
}

func TestTuningAnonymousCompleteSkipsSave(t *testing.T) {
	saver := newFakeSessionService()
	svc := newTuningService(t, saver)
	ctx := clientCtx("client-anon", uuid.Nil)

	if _, err := svc.Start(ctx, []types.Domain{types.DomainPlay}); err != nil {
		t.Fatal(err)
	}
	done, err := svc.Complete(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if done.UserID != nil {
		t.Errorf("anonymous session carries user id %v", done.UserID)
	}

	select {
	case <-saver.saved:
		t.Fatal("anonymous session should not be saved")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestTuningDoubleCompletePersistsOnce(t *testing.T) {
	saver := newFakeSessionService()
	history := newMemoryHistoryStore()
	svc := NewTuningService(testLogger(t), catalog.MustLoad(), saver, history)
	userID := uuid.New()
	ctx := clientCtx("client-retry", userID)

	if _, err := svc.Start(ctx, []types.Domain{types.DomainBody}); err != nil {
		t.Fatal(err)
	}
	first, err := svc.Complete(ctx)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-saver.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("completed session was never saved")
	}

	// A retried complete returns the stored result and persists nothing.
	second, err := svc.Complete(ctx)
	if err != nil {
		t.Fatalf("repeated Complete: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeated Complete returned session %s, want %s", second.ID, first.ID)
	}

	select {
	case <-saver.saved:
		t.Fatal("repeated complete saved the session again")
	case <-time.After(200 * time.Millisecond):
	}

	stored, err := history.List(ctx, "client-retry")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Errorf("history holds %d entries after double complete, want 1", len(stored))
	}
}

func TestTuningClientsAreIsolated(t *testing.T) {
	svc := newTuningService(t, newFakeSessionService())
	ctxA := clientCtx("client-a", uuid.Nil)
	ctxB := clientCtx("client-b", uuid.Nil)

	if _, err := svc.Start(ctxA, []types.Domain{types.DomainBody}); err != nil {
		t.Fatal(err)
	}

	stateB, err := svc.State(ctxB)
	if err != nil {
		t.Fatal(err)
	}
	if stateB.Session != nil {
		t.Error("client B sees client A's session")
	}

	stateA, err := svc.State(ctxA)
	if err != nil {
		t.Fatal(err)
	}
	if stateA.Session == nil {
		t.Error("client A lost its session")
	}
}

func TestTuningAnswerValidation(t *testing.T) {
	svc := newTuningService(t, newFakeSessionService())
	ctx := clientCtx("client-v", uuid.Nil)

	if _, err := svc.Answer(ctx, "S1", "S1-a"); err == nil {
		t.Fatal("Answer before Start should fail")
	}
	if _, err := svc.Start(ctx, []types.Domain{types.DomainBody}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Answer(ctx, "bogus", "bogus-a"); err == nil {
		t.Fatal("Answer to unknown question should fail")
	}
}
