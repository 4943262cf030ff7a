package tuning

import (
	"errors"
	"time"

	"github.com/soundfield/attune-backend/internal/catalog"
	types "github.com/soundfield/attune-backend/internal/domain/tuning"
)

// ErrNilSession is returned when scoring is asked for a missing session.
var ErrNilSession = errors.New("nil session")

type sum struct {
	total float64
	count int
}

// Compute scores a session's answers. Answers referencing questions or
// options no longer in the catalog are skipped rather than failing the
// whole computation; stored sessions may outlive catalog edits.
//
// Every note appears in the result. Unanswered notes score the neutral
// 0.5 with zero questions answered and do not pull the overall vibrancy,
// which averages only the answered notes. A session with no usable
// answers lands at 0.5 across the board.
func Compute(cat *catalog.Catalog, session *types.Session, now time.Time) (types.Results, error) {
	if session == nil {
		return types.Results{}, ErrNilSession
	}

	noteSums := make(map[types.Note]*sum, len(types.AllNotes))
	for _, n := range types.AllNotes {
		noteSums[n] = &sum{}
	}
	domainSums := make(map[types.Domain]map[types.Note]*sum)

	for _, a := range session.Answers {
		q := cat.ByID(a.QuestionID)
		if q == nil {
			continue
		}
		opt := q.Option(a.OptionID)
		if opt == nil {
			continue
		}
		w := opt.Resonance.Weight()
		s := noteSums[q.Note]
		s.total += w
		s.count++
		if q.Domain != "" {
			perNote := domainSums[q.Domain]
			if perNote == nil {
				perNote = make(map[types.Note]*sum)
				domainSums[q.Domain] = perNote
			}
			ds := perNote[q.Note]
			if ds == nil {
				ds = &sum{}
				perNote[q.Note] = ds
			}
			ds.total += w
			ds.count++
		}
	}

	results := types.Results{
		Notes:     make(map[types.Note]types.NoteResonance, len(types.AllNotes)),
		Domains:   make(map[types.Domain]types.DomainResonance, len(domainSums)),
		Timestamp: now,
	}
	var vibrancyTotal float64
	var vibrancyCount int
	for _, n := range types.AllNotes {
		s := noteSums[n]
		nr := types.NoteResonance{Value: 0.5}
		if s.count > 0 {
			nr = types.NoteResonance{
				Value:             s.total / float64(s.count),
				QuestionsAnswered: s.count,
			}
			vibrancyTotal += nr.Value
			vibrancyCount++
		}
		results.Notes[n] = nr
	}
	if vibrancyCount > 0 {
		results.OverallVibrancy = vibrancyTotal / float64(vibrancyCount)
	} else {
		results.OverallVibrancy = 0.5
	}

	for d, perNote := range domainSums {
		dr := types.DomainResonance{
			Notes: make(map[types.Note]types.NoteResonance, len(perNote)),
		}
		var dTotal float64
		var dCount int
		for n, s := range perNote {
			v := s.total / float64(s.count)
			dr.Notes[n] = types.NoteResonance{Value: v, QuestionsAnswered: s.count}
			dTotal += v
			dCount++
		}
		dr.OverallVibrancy = dTotal / float64(dCount)
		results.Domains[d] = dr
	}

	return results, nil
}
