// Package domain re-exports the per-area model packages under one import,
// so repos/services can refer to a single types package.
package domain

import (
	"github.com/soundfield/attune-backend/internal/domain/auth"
	"github.com/soundfield/attune-backend/internal/domain/tuning"
	"github.com/soundfield/attune-backend/internal/domain/user"
)

type (
	User               = user.User
	UserToken          = auth.UserToken
	PasswordResetToken = auth.PasswordResetToken

	Note             = tuning.Note
	Domain           = tuning.Domain
	ResonanceLevel   = tuning.ResonanceLevel
	TensionType      = tuning.TensionType
	AnswerOption     = tuning.AnswerOption
	Question         = tuning.Question
	Answer           = tuning.Answer
	TuningSession    = tuning.Session
	TuningSessionRow = tuning.SessionRow
	NoteResonance    = tuning.NoteResonance
	DomainResonance  = tuning.DomainResonance
	TuningResults    = tuning.Results
	TuningPhase      = tuning.Phase
	NoteInfo         = tuning.NoteInfo
	DomainInfo       = tuning.DomainInfo
)

const (
	PhaseWelcome      = tuning.PhaseWelcome
	PhaseDomainSelect = tuning.PhaseDomainSelect
	PhaseTuning       = tuning.PhaseTuning
	PhaseTransition   = tuning.PhaseTransition
	PhaseResults      = tuning.PhaseResults
)

const (
	NoteSafety   = tuning.NoteSafety
	NotePleasure = tuning.NotePleasure
	NotePower    = tuning.NotePower
	NoteLight    = tuning.NoteLight
	NoteNow      = tuning.NoteNow
	NoteHeat     = tuning.NoteHeat
)

const (
	DomainSpirit        = tuning.DomainSpirit
	DomainBody          = tuning.DomainBody
	DomainSelf          = tuning.DomainSelf
	DomainRelationships = tuning.DomainRelationships
	DomainWealth        = tuning.DomainWealth
	DomainPurpose       = tuning.DomainPurpose
	DomainPlay          = tuning.DomainPlay
)

var (
	AllNotes    = tuning.AllNotes
	AllDomains  = tuning.AllDomains
	NoteOrder   = tuning.NoteOrder
	NoteInfos   = tuning.NoteInfos
	DomainInfos = tuning.DomainInfos
)
