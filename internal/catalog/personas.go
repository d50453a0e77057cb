package catalog

// Personas returns the starting modifier presets. These are code, not data:
// their fields are multipliers wired directly into engine formulas, and a
// new persona means new balance work anyway.
func Personas() []Persona {
	return []Persona{
		{
			ID:           "operator",
			Name:         "The Operator",
			BuyHeatMult:  1.0,
			EncounterMod: 0,
			FareMult:     1.0,
		},
		{
			ID:             "ghost",
			Name:           "The Ghost",
			BuyHeatMult:    0.8,
			EncounterMod:   -0.03,
			HeatDecayBonus: 3,
			FareMult:       1.1,
		},
		{
			ID:            "hauler",
			Name:          "The Hauler",
			BuyHeatMult:   1.1,
			EncounterMod:  0.01,
			CapacityBonus: 20,
			FareMult:      1.0,
		},
		{
			ID:           "fixer",
			Name:         "The Fixer",
			BuyHeatMult:  1.2,
			EncounterMod: -0.05,
			FareMult:     0.85,
		},
	}
}

// PersonaByID returns a persona preset, with the neutral Operator as the
// fallback for unknown or empty IDs.
func PersonaByID(id string) Persona {
	for _, p := range Personas() {
		if p.ID == id {
			return p
		}
	}
	return Personas()[0]
}

// ranks ordered by descending reputation floor.
var ranks = []Rank{
	{MinReputation: 200, Title: "Kingpin"},
	{MinReputation: 120, Title: "Boss"},
	{MinReputation: 70, Title: "Underboss"},
	{MinReputation: 40, Title: "Captain"},
	{MinReputation: 20, Title: "Soldier"},
	{MinReputation: 5, Title: "Runner"},
	{MinReputation: 0, Title: "Nobody"},
}

// RankFor returns the street title for a reputation score.
func RankFor(reputation int) string {
	for _, r := range ranks {
		if reputation >= r.MinReputation {
			return r.Title
		}
	}
	return ranks[len(ranks)-1].Title
}
