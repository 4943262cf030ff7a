package domain

import "testing"

func TestNoteAndDomainConstantsCoverCatalogSets(t *testing.T) {
	wantNotes := map[Note]bool{
		NoteSafety:   true,
		NotePleasure: true,
		NotePower:    true,
		NoteLight:    true,
		NoteNow:      true,
		NoteHeat:     true,
	}
	if len(AllNotes) != len(wantNotes) {
		t.Fatalf("AllNotes has %d entries, want %d", len(AllNotes), len(wantNotes))
	}
	for _, n := range AllNotes {
		if !wantNotes[n] {
			t.Errorf("AllNotes contains unexpected note %q", n)
		}
	}

	wantDomains := map[Domain]bool{
		DomainSpirit:        true,
		DomainBody:          true,
		DomainSelf:          true,
		DomainRelationships: true,
		DomainWealth:        true,
		DomainPurpose:       true,
		DomainPlay:          true,
	}
	if len(AllDomains) != len(wantDomains) {
		t.Fatalf("AllDomains has %d entries, want %d", len(AllDomains), len(wantDomains))
	}
	for _, d := range AllDomains {
		if !wantDomains[d] {
			t.Errorf("AllDomains contains unexpected domain %q", d)
		}
	}
}
