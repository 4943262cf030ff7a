package tuning

import (
	"errors"
	"testing"

	"github.com/soundfield/attune-backend/internal/catalog"
	types "github.com/soundfield/attune-backend/internal/domain/tuning"
)

func TestSelectForDomains(t *testing.T) {
	cat := catalog.MustLoad()

	generalCount := 0
	domainCount := make(map[types.Domain]int)
	for _, q := range cat.Questions() {
		if q.Domain == "" {
			generalCount++
		} else {
			domainCount[q.Domain]++
		}
	}

	tests := []struct {
		name    string
		domains []types.Domain
		want    int
	}{
		{"single domain", []types.Domain{types.DomainBody}, generalCount + domainCount[types.DomainBody]},
		{"two domains", []types.Domain{types.DomainBody, types.DomainWealth}, generalCount + domainCount[types.DomainBody] + domainCount[types.DomainWealth]},
		{"all domains", types.AllDomains, cat.Len()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectForDomains(cat, tt.domains)
			if err != nil {
				t.Fatalf("SelectForDomains: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("selected %d questions, want %d", len(got), tt.want)
			}
			allowed := make(map[types.Domain]bool)
			for _, d := range tt.domains {
				allowed[d] = true
			}
			for _, q := range got {
				if q.Domain != "" && !allowed[q.Domain] {
					t.Errorf("question %s from unselected domain %s", q.ID, q.Domain)
				}
			}
		})
	}
}

func TestSelectForDomainsEmpty(t *testing.T) {
	cat := catalog.MustLoad()
	_, err := SelectForDomains(cat, nil)
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
}

func TestSelectForDomainsUnknown(t *testing.T) {
	cat := catalog.MustLoad()
	_, err := SelectForDomains(cat, []types.Domain{"career"})
	if err == nil {
		t.Fatal("expected error for unknown domain")
	}
}

func TestShuffleInterleavedIsPermutation(t *testing.T) {
	cat := catalog.MustLoad()
	in, err := SelectForDomains(cat, types.AllDomains)
	if err != nil {
		t.Fatal(err)
	}
	out := ShuffleInterleaved(in)
	if len(out) != len(in) {
		t.Fatalf("shuffled %d questions, want %d", len(out), len(in))
	}
	seen := make(map[string]int)
	for _, q := range out {
		seen[q.ID]++
	}
	for _, q := range in {
		if seen[q.ID] != 1 {
			t.Errorf("question %s appears %d times", q.ID, seen[q.ID])
		}
	}
}

func TestShuffleInterleavedRotatesNotes(t *testing.T) {
	cat := catalog.MustLoad()
	in, err := SelectForDomains(cat, types.AllDomains)
	if err != nil {
		t.Fatal(err)
	}
	// With all domains selected every note holds at least 5 questions, so
	// the first several rounds draw from all six pools and no two adjacent
	// questions may share a note there.
	out := ShuffleInterleaved(in)
	for i := 1; i < 24; i++ {
		if out[i].Note == out[i-1].Note {
			t.Errorf("positions %d and %d share note %s", i-1, i, out[i].Note)
		}
	}
}

func TestShuffleInterleavedFollowsNoteRotation(t *testing.T) {
	cat := catalog.MustLoad()
	in, err := SelectForDomains(cat, types.AllDomains)
	if err != nil {
		t.Fatal(err)
	}
	out := ShuffleInterleaved(in)
	for i, note := range types.NoteOrder {
		if out[i].Note != note {
			t.Errorf("position %d has note %s, want %s", i, out[i].Note, note)
		}
	}
}

func TestShuffleInterleavedEmpty(t *testing.T) {
	if got := ShuffleInterleaved(nil); len(got) != 0 {
		t.Errorf("shuffle of nil returned %d questions", len(got))
	}
}
