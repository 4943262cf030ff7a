package tuning

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseWelcome      Phase = "welcome"
	PhaseDomainSelect Phase = "domain-select"
	PhaseTuning       Phase = "tuning"
	PhaseTransition   Phase = "transition"
	PhaseResults      Phase = "results"
)

// Answer records the option a user picked for a question. At most one
// Answer exists per question within a session; re-answering replaces it.
type Answer struct {
	QuestionID string    `json:"question_id"`
	OptionID   string    `json:"option_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Session is one complete attempt at the questionnaire, from domain
// selection through results. It owns its answers and results outright.
type Session struct {
	ID              uuid.UUID  `json:"id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	SelectedDomains []Domain   `json:"selected_domains"`
	Answers         []Answer   `json:"answers"`
	Results         *Results   `json:"results,omitempty"`
	Completed       bool       `json:"completed"`
}

// AnswerFor returns the recorded answer for a question, or nil.
func (s *Session) AnswerFor(questionID string) *Answer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

// Upsert records an answer, replacing any prior answer for the same
// question.
func (s *Session) Upsert(a Answer) {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == a.QuestionID {
			s.Answers[i] = a
			return
		}
	}
	s.Answers = append(s.Answers, a)
}

// Clone returns a deep copy so callers can hand sessions across goroutine
// boundaries without sharing the answer slice.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.SelectedDomains = append([]Domain(nil), s.SelectedDomains...)
	out.Answers = append([]Answer(nil), s.Answers...)
	if s.Results != nil {
		r := s.Results.Clone()
		out.Results = &r
	}
	return &out
}
