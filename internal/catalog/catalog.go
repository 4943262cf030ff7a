// Package catalog loads and validates the embedded question catalog.
// The catalog is fixed at build time; a bad catalog is a programming
// error, not a runtime condition.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	types "github.com/soundfield/attune-backend/internal/domain/tuning"
)

//go:embed catalog.yaml
var catalogYAML []byte

type file struct {
	Questions []types.Question `yaml:"questions"`
}

// Catalog is the validated, read-only question set.
type Catalog struct {
	questions []types.Question
	byID      map[string]*types.Question
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{
		questions: f.Questions,
		byID:      make(map[string]*types.Question, len(f.Questions)),
	}
	for i := range c.questions {
		q := &c.questions[i]
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("catalog question %q: duplicate id", q.ID)
		}
		c.byID[q.ID] = q
	}
	if len(c.questions) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return c, nil
}

// MustLoad is Load for wiring paths where a bad catalog should halt startup.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func validateQuestion(q *types.Question) error {
	if q.ID == "" {
		return fmt.Errorf("catalog question with empty id")
	}
	if !q.Note.Valid() {
		return fmt.Errorf("catalog question %q: unknown note %q", q.ID, q.Note)
	}
	if q.Domain != "" && !q.Domain.Valid() {
		return fmt.Errorf("catalog question %q: unknown domain %q", q.ID, q.Domain)
	}
	if q.Text == "" {
		return fmt.Errorf("catalog question %q: empty text", q.ID)
	}
	if len(q.Options) < 4 || len(q.Options) > 5 {
		return fmt.Errorf("catalog question %q: has %d options, want 4-5", q.ID, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return fmt.Errorf("catalog question %q: option with empty id", q.ID)
		}
		if seen[opt.ID] {
			return fmt.Errorf("catalog question %q: duplicate option id %q", q.ID, opt.ID)
		}
		seen[opt.ID] = true
		if opt.Text == "" {
			return fmt.Errorf("catalog question %q: option %q has empty text", q.ID, opt.ID)
		}
		if !opt.Resonance.Valid() {
			return fmt.Errorf("catalog question %q: option %q has unknown resonance %q", q.ID, opt.ID, opt.Resonance)
		}
		if opt.Tension != "" && !opt.Tension.Valid() {
			return fmt.Errorf("catalog question %q: option %q has unknown tension %q", q.ID, opt.ID, opt.Tension)
		}
	}
	return nil
}

// Questions returns the full catalog in authored order. Callers must not
// mutate the returned slice.
func (c *Catalog) Questions() []types.Question {
	return c.questions
}

// ByID returns the question with the given id, or nil.
func (c *Catalog) ByID(id string) *types.Question {
	return c.byID[id]
}

// Len reports the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// noteInvitations is shown on the transition screen between notes.
var noteInvitations = map[types.Note]string{
	types.NoteSafety:   "Safety isn't playing small. It's the ground from which you can fully expand.",
	types.NotePleasure: "Pleasure is your guidance system. It tells you where life is flowing.",
	types.NotePower:    "True power isn't force. It's the capacity to create and to choose.",
	types.NoteLight:    "Clarity isn't figuring everything out. It's seeing what's actually here.",
	types.NoteNow:      "The present moment is the only place creation happens.",
	types.NoteHeat:     "Heat is life force. Too much burns. Too little and nothing grows.",
}

// NoteInvitation returns the short somatic prompt for a note, or an empty
// string for an unknown note.
func NoteInvitation(n types.Note) string {
	return noteInvitations[n]
}
