// Package tuning holds the quiz core: question selection, the session
// state machine, and results scoring. It has no transport or storage
// concerns; services wrap it.
package tuning

import (
	"errors"
	"math/rand"

	"github.com/soundfield/attune-backend/internal/catalog"
	types "github.com/soundfield/attune-backend/internal/domain/tuning"
)

// ErrEmptySelection is returned when a session is started with no domains.
var ErrEmptySelection = errors.New("no domains selected")

// SelectForDomains returns the question set for a domain selection: every
// general question plus the domain questions whose domain was selected.
// Catalog order is preserved; shuffling is a separate step.
func SelectForDomains(cat *catalog.Catalog, domains []types.Domain) ([]types.Question, error) {
	if len(domains) == 0 {
		return nil, ErrEmptySelection
	}
	selected := make(map[types.Domain]bool, len(domains))
	for _, d := range domains {
		if !d.Valid() {
			return nil, errors.New("unknown domain: " + string(d))
		}
		selected[d] = true
	}
	var out []types.Question
	for _, q := range cat.Questions() {
		if q.Domain == "" || selected[q.Domain] {
			out = append(out, q)
		}
	}
	return out, nil
}

// ShuffleInterleaved randomizes question order while keeping the notes
// rotating: questions are shuffled within each note, then dealt one per
// note per round following the fixed note rotation. Adjacent questions
// therefore never share a note until a note's pool runs dry.
func ShuffleInterleaved(questions []types.Question) []types.Question {
	byNote := make(map[types.Note][]types.Question, len(types.NoteOrder))
	for _, q := range questions {
		byNote[q.Note] = append(byNote[q.Note], q)
	}
	for note, qs := range byNote {
		rand.Shuffle(len(qs), func(i, j int) {
			qs[i], qs[j] = qs[j], qs[i]
		})
		byNote[note] = qs
	}
	out := make([]types.Question, 0, len(questions))
	for round := 0; len(out) < len(questions); round++ {
		for _, note := range types.NoteOrder {
			if pool := byNote[note]; round < len(pool) {
				out = append(out, pool[round])
			}
		}
	}
	return out
}
