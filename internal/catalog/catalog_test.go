package catalog

import (
	"strings"
	"testing"

	types "github.com/soundfield/attune-backend/internal/domain/tuning"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 34 {
		t.Fatalf("catalog has %d questions, want 34", c.Len())
	}
}

func TestLoadNoteCounts(t *testing.T) {
	c := MustLoad()
	want := map[types.Note]int{
		types.NoteSafety:   7,
		types.NotePleasure: 6,
		types.NotePower:    6,
		types.NoteLight:    5,
		types.NoteNow:      5,
		types.NoteHeat:     5,
	}
	got := make(map[types.Note]int)
	for _, q := range c.Questions() {
		got[q.Note]++
	}
	for note, n := range want {
		if got[note] != n {
			t.Errorf("note %s: %d questions, want %d", note, got[note], n)
		}
	}
}

func TestLoadGeneralAndDomainSplit(t *testing.T) {
	c := MustLoad()
	general := 0
	perDomain := make(map[types.Domain]int)
	for _, q := range c.Questions() {
		if q.Domain == "" {
			general++
		} else {
			perDomain[q.Domain]++
		}
	}
	if general != 18 {
		t.Errorf("general questions = %d, want 18", general)
	}
	for _, d := range types.AllDomains {
		if perDomain[d] == 0 {
			t.Errorf("domain %s has no questions", d)
		}
	}
}

func TestEveryQuestionHasHighOption(t *testing.T) {
	c := MustLoad()
	for _, q := range c.Questions() {
		found := false
		for _, opt := range q.Options {
			if opt.Resonance == types.ResonanceHigh {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("question %s has no high-resonance option", q.ID)
		}
	}
}

func TestOptionIDsPrefixed(t *testing.T) {
	// Option ids share the question id's prefix, which keeps answers
	// self-describing in stored JSON.
	c := MustLoad()
	for _, q := range c.Questions() {
		for _, opt := range q.Options {
			if !strings.Contains(opt.ID, "-") {
				t.Errorf("question %s: option id %q has no suffix separator", q.ID, opt.ID)
			}
		}
	}
}

func TestByID(t *testing.T) {
	c := MustLoad()
	q := c.ByID("S1")
	if q == nil {
		t.Fatal("ByID(S1) = nil")
	}
	if q.Note != types.NoteSafety {
		t.Errorf("S1 note = %s, want safety", q.Note)
	}
	if got := c.ByID("nope"); got != nil {
		t.Errorf("ByID(nope) = %+v, want nil", got)
	}
}

func TestNoteInvitation(t *testing.T) {
	for _, n := range types.AllNotes {
		if NoteInvitation(n) == "" {
			t.Errorf("no invitation for note %s", n)
		}
	}
	if NoteInvitation(types.Note("bogus")) != "" {
		t.Error("invitation for unknown note should be empty")
	}
}
