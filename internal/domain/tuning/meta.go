package tuning

// Triad groups the six notes into two complementary halves.
type Triad string

const (
	TriadFeminine  Triad = "feminine"
	TriadMasculine Triad = "masculine"
)

type NoteInfo struct {
	ID      Note   `json:"id"`
	Name    string `json:"name"`
	Triad   Triad  `json:"triad"`
	Essence string `json:"essence"`
	Color   string `json:"color"`
}

type DomainInfo struct {
	ID          Domain `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NoteInfos is display metadata for the six notes, in catalog order.
var NoteInfos = []NoteInfo{
	{ID: NoteSafety, Name: "Safety", Triad: TriadFeminine, Essence: "The ground from which expansion happens", Color: "safety"},
	{ID: NotePleasure, Name: "Pleasure", Triad: TriadFeminine, Essence: "The guidance system — where life is flowing", Color: "pleasure"},
	{ID: NotePower, Name: "Power", Triad: TriadFeminine, Essence: "Capacity to create and choose", Color: "power"},
	{ID: NoteLight, Name: "Light", Triad: TriadMasculine, Essence: "Illumination, clarity — seeing what's here", Color: "light"},
	{ID: NoteNow, Name: "Now", Triad: TriadMasculine, Essence: "Presence — where creation happens", Color: "now"},
	{ID: NoteHeat, Name: "Heat", Triad: TriadMasculine, Essence: "Creative tension — life force", Color: "heat"},
}

// DomainInfos is display metadata for the seven life domains.
var DomainInfos = []DomainInfo{
	{ID: DomainSpirit, Name: "Spirit", Description: "God, Universe, Energy, Source, the Quantum"},
	{ID: DomainBody, Name: "Body", Description: "Health, feelings, sensations, lived experience"},
	{ID: DomainSelf, Name: "Self", Description: "Mind, identity, self-awareness, inner narrative"},
	{ID: DomainRelationships, Name: "Relationships", Description: "Others, love, intimacy, self-love reflected"},
	{ID: DomainWealth, Name: "Wealth", Description: "Money, prosperity, abundance, provision"},
	{ID: DomainPurpose, Name: "Purpose", Description: "Impact, contribution, legacy, meaning"},
	{ID: DomainPlay, Name: "Play", Description: "Fun, adventure, lightness, joy"},
}
