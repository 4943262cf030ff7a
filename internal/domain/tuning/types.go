package tuning

// Note is one of the six frequency dimensions a question measures.
type Note string

const (
	NoteSafety   Note = "safety"
	NotePleasure Note = "pleasure"
	NotePower    Note = "power"
	NoteLight    Note = "light"
	NoteNow      Note = "now"
	NoteHeat     Note = "heat"
)

// AllNotes lists the six notes in catalog order.
var AllNotes = []Note{NoteSafety, NotePleasure, NotePower, NoteLight, NoteNow, NoteHeat}

// NoteOrder is the fixed interleave sequence used when shuffling a session's
// questions: one question per note per round, alternating the feminine and
// masculine triads.
var NoteOrder = []Note{NoteSafety, NoteLight, NotePleasure, NoteNow, NotePower, NoteHeat}

// Domain is one of the seven life areas a user may opt into.
type Domain string

const (
	DomainSpirit        Domain = "spirit"
	DomainBody          Domain = "body"
	DomainSelf          Domain = "self"
	DomainRelationships Domain = "relationships"
	DomainWealth        Domain = "wealth"
	DomainPurpose       Domain = "purpose"
	DomainPlay          Domain = "play"
)

var AllDomains = []Domain{
	DomainSpirit,
	DomainBody,
	DomainSelf,
	DomainRelationships,
	DomainWealth,
	DomainPurpose,
	DomainPlay,
}

// ResonanceLevel is the qualitative strength label on an answer option.
type ResonanceLevel string

const (
	ResonanceHigh    ResonanceLevel = "high"
	ResonanceMidHigh ResonanceLevel = "mid-high"
	ResonanceMid     ResonanceLevel = "mid"
	ResonanceMidLow  ResonanceLevel = "mid-low"
	ResonanceLow     ResonanceLevel = "low"
)

// resonanceWeights is the fixed scoring map. Not configurable at runtime.
var resonanceWeights = map[ResonanceLevel]float64{
	ResonanceHigh:    1.0,
	ResonanceMidHigh: 0.75,
	ResonanceMid:     0.5,
	ResonanceMidLow:  0.25,
	ResonanceLow:     0.0,
}

// Weight returns the numeric scoring weight for a resonance level, or 0.5
// for an unknown level.
func (r ResonanceLevel) Weight() float64 {
	if w, ok := resonanceWeights[r]; ok {
		return w
	}
	return 0.5
}

func (r ResonanceLevel) Valid() bool {
	_, ok := resonanceWeights[r]
	return ok
}

// TensionType is descriptive metadata on an option; it is never read by
// scoring.
type TensionType string

const (
	TensionTight    TensionType = "tight"
	TensionBalanced TensionType = "balanced"
	TensionLoose    TensionType = "loose"
)

func (t TensionType) Valid() bool {
	switch t {
	case TensionTight, TensionBalanced, TensionLoose:
		return true
	default:
		return false
	}
}

func (n Note) Valid() bool {
	switch n {
	case NoteSafety, NotePleasure, NotePower, NoteLight, NoteNow, NoteHeat:
		return true
	default:
		return false
	}
}

func (d Domain) Valid() bool {
	switch d {
	case DomainSpirit, DomainBody, DomainSelf, DomainRelationships, DomainWealth, DomainPurpose, DomainPlay:
		return true
	default:
		return false
	}
}

// AnswerOption is one of the 4-5 fixed choices on a question. Immutable,
// defined at catalog-authoring time.
type AnswerOption struct {
	ID        string         `yaml:"id" json:"id"`
	Text      string         `yaml:"text" json:"text"`
	Resonance ResonanceLevel `yaml:"resonance" json:"resonance"`
	Tension   TensionType    `yaml:"tension,omitempty" json:"tension,omitempty"`
}

// Question is a single catalog entry. An empty Domain means the question is
// general and applies regardless of domain selection.
type Question struct {
	ID      string         `yaml:"id" json:"id"`
	Note    Note           `yaml:"note" json:"note"`
	Domain  Domain         `yaml:"domain,omitempty" json:"domain,omitempty"`
	Text    string         `yaml:"text" json:"text"`
	Subtext string         `yaml:"subtext,omitempty" json:"subtext,omitempty"`
	Options []AnswerOption `yaml:"options" json:"options"`
}

// Option returns the option with the given id, or nil.
func (q *Question) Option(optionID string) *AnswerOption {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}
