package tuning

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/soundfield/attune-backend/internal/catalog"
	types "github.com/soundfield/attune-backend/internal/domain/tuning"
)

// HistoryCap bounds the in-memory completed-session history per client.
const HistoryCap = 50

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrUnknownQuestion = errors.New("question not in session")
	ErrUnknownOption   = errors.New("option not on question")
)

// Tracker is the quiz state machine for one client: the active session,
// its ordered questions, the cursor, and a bounded history of completed
// sessions. It is not safe for concurrent use; callers serialize access.
type Tracker struct {
	catalog   *catalog.Catalog
	phase     types.Phase
	session   *types.Session
	questions []types.Question
	index     int
	history   []*types.Session
}

func NewTracker(cat *catalog.Catalog) *Tracker {
	return &Tracker{catalog: cat, phase: types.PhaseWelcome}
}

// Start begins a fresh session for the given domain selection, replacing
// any session in progress. Question order is randomized per session.
func (t *Tracker) Start(userID *uuid.UUID, domains []types.Domain, now time.Time) (*types.Session, error) {
	selected, err := SelectForDomains(t.catalog, domains)
	if err != nil {
		return nil, err
	}
	t.session = &types.Session{
		ID:              uuid.New(),
		UserID:          userID,
		CreatedAt:       now,
		SelectedDomains: append([]types.Domain(nil), domains...),
	}
	t.questions = ShuffleInterleaved(selected)
	t.index = 0
	t.phase = types.PhaseTuning
	return t.session.Clone(), nil
}

// Answer records the chosen option for a question in the active session,
// replacing any earlier answer to the same question.
func (t *Tracker) Answer(questionID, optionID string, now time.Time) error {
	if t.session == nil || t.session.Completed {
		return ErrNoActiveSession
	}
	var q *types.Question
	for i := range t.questions {
		if t.questions[i].ID == questionID {
			q = &t.questions[i]
			break
		}
	}
	if q == nil {
		return ErrUnknownQuestion
	}
	if q.Option(optionID) == nil {
		return ErrUnknownOption
	}
	t.session.Upsert(types.Answer{QuestionID: questionID, OptionID: optionID, Timestamp: now})
	return nil
}

// Next advances the cursor, clamped at the last question.
func (t *Tracker) Next() error {
	if t.session == nil {
		return ErrNoActiveSession
	}
	if t.index < len(t.questions)-1 {
		t.index++
	}
	return nil
}

// Previous moves the cursor back, clamped at the first question.
func (t *Tracker) Previous() error {
	if t.session == nil {
		return ErrNoActiveSession
	}
	if t.index > 0 {
		t.index--
	}
	return nil
}

// Complete scores the active session, records it in history and returns
// it. Completing an already completed session recomputes nothing and
// returns the stored result.
func (t *Tracker) Complete(now time.Time) (*types.Session, error) {
	if t.session == nil {
		return nil, ErrNoActiveSession
	}
	if t.session.Completed {
		return t.session.Clone(), nil
	}
	results, err := Compute(t.catalog, t.session, now)
	if err != nil {
		return nil, err
	}
	t.session.Results = &results
	t.session.Completed = true
	t.phase = types.PhaseResults

	t.history = append([]*types.Session{t.session.Clone()}, t.history...)
	if len(t.history) > HistoryCap {
		t.history = t.history[:HistoryCap]
	}
	return t.session.Clone(), nil
}

// Reset drops the active session and returns to the welcome phase.
// History is kept.
func (t *Tracker) Reset() {
	t.session = nil
	t.questions = nil
	t.index = 0
	t.phase = types.PhaseWelcome
}

// ClearHistory drops all remembered completed sessions.
func (t *Tracker) ClearHistory() {
	t.history = nil
}

func (t *Tracker) Phase() types.Phase { return t.phase }

// Session returns a copy of the active session, or nil.
func (t *Tracker) Session() *types.Session {
	return t.session.Clone()
}

// Questions returns the session's question order. Callers must not
// mutate the returned slice.
func (t *Tracker) Questions() []types.Question {
	return t.questions
}

// CurrentQuestion returns the question under the cursor, or nil when no
// session is active.
func (t *Tracker) CurrentQuestion() *types.Question {
	if t.session == nil || t.index >= len(t.questions) {
		return nil
	}
	return &t.questions[t.index]
}

// Progress reports the zero-based cursor and the total question count.
func (t *Tracker) Progress() (index, total int) {
	return t.index, len(t.questions)
}

func (t *Tracker) IsFirst() bool { return t.index == 0 }

func (t *Tracker) IsLast() bool {
	return len(t.questions) > 0 && t.index == len(t.questions)-1
}

// HasAnsweredCurrent reports whether the question under the cursor has a
// recorded answer.
func (t *Tracker) HasAnsweredCurrent() bool {
	q := t.CurrentQuestion()
	return q != nil && t.session.AnswerFor(q.ID) != nil
}

// AnswerFor returns the recorded answer for a question in the active
// session, or nil.
func (t *Tracker) AnswerFor(questionID string) *types.Answer {
	if t.session == nil {
		return nil
	}
	return t.session.AnswerFor(questionID)
}

// History returns copies of completed sessions, most recent first.
func (t *Tracker) History() []*types.Session {
	out := make([]*types.Session, len(t.history))
	for i, s := range t.history {
		out[i] = s.Clone()
	}
	return out
}
