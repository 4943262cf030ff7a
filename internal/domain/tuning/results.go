package tuning

import "time"

// NoteResonance is the scored value for one note: 0.0-1.0, plus how many
// answered questions contributed to it.
type NoteResonance struct {
	Value             float64 `json:"value"`
	QuestionsAnswered int     `json:"questions_answered"`
}

// DomainResonance is the per-domain breakdown: note scores restricted to
// that domain's questions.
type DomainResonance struct {
	Notes           map[Note]NoteResonance `json:"notes"`
	OverallVibrancy float64                `json:"overall_vibrancy"`
}

// Results is the computed outcome of a completed session. Notes always
// carries all six notes (0.5 default for unanswered ones); Domains carries
// only domains that received at least one answered question.
type Results struct {
	Notes           map[Note]NoteResonance     `json:"notes"`
	Domains         map[Domain]DomainResonance `json:"domains"`
	OverallVibrancy float64                    `json:"overall_vibrancy"`
	Timestamp       time.Time                  `json:"timestamp"`
}

func (r Results) Clone() Results {
	out := r
	out.Notes = make(map[Note]NoteResonance, len(r.Notes))
	for k, v := range r.Notes {
		out.Notes[k] = v
	}
	out.Domains = make(map[Domain]DomainResonance, len(r.Domains))
	for k, v := range r.Domains {
		dv := v
		dv.Notes = make(map[Note]NoteResonance, len(v.Notes))
		for nk, nv := range v.Notes {
			dv.Notes[nk] = nv
		}
		out.Domains[k] = dv
	}
	return out
}
