package game

import (
	"testing"

	"github.com/talgya/kingpin/internal/catalog"
	"github.com/talgya/kingpin/internal/entropy"
)

// testCatalog builds the minimal two-region world the engine tests run on.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.Catalog{
		CycleSeed: 1,
		Commodities: []catalog.Commodity{
			{ID: "salt", Name: "Salt", MinPrice: 100, MaxPrice: 200, SpawnChance: 0.05},
			{ID: "pepper", Name: "Pepper", MinPrice: 150, MaxPrice: 400, SpawnChance: 0.10, Contraband: true},
			{ID: "saffron", Name: "Saffron", MinPrice: 1000, MaxPrice: 3000, SpawnChance: 0.20, Rare: true, Contraband: true},
		},
		Regions: []catalog.Region{
			{ID: "west", Name: "Westside", Law: catalog.LawStandard, LawRisk: 0.05, Strictness: 0.10, Arrival: "market"},
			{ID: "east", Name: "Eastside", Law: catalog.LawMethodical, LawRisk: 0.08, Strictness: 0.30, MinReputation: 50, Arrival: "gate"},
		},
		Locations: []catalog.Location{
			{ID: "market", Name: "The Market", Region: "west"},
			{ID: "wharf", Name: "The Wharf", Region: "west", Turf: "guild", TerritoryCost: 10000, TributeRate: 0.01},
			{ID: "gate", Name: "East Gate", Region: "east"},
		},
		Factions: []catalog.Faction{
			{ID: "guild", Name: "The Guild", Home: "wharf", Preferred: "pepper",
				ConsignRate: 0.05, LoanRate: 0.10, CreditBase: 20000, WarStrength: 8},
		},
		Events: []catalog.MarketEvent{
			{ID: "salt_spike", Headline: "Salt shortage", Commodity: "salt", Multiplier: 4.0},
			{ID: "pepper_crash", Headline: "Pepper glut", Commodity: "pepper", Multiplier: 0.25},
		},
	})
	if err != nil {
		t.Fatalf("test catalog: %v", err)
	}
	return cat
}

// quiet is a Fixed source on which every Chance roll fails and every IntN
// returns its lower bound: no events, no hazards, base prices.
func quiet() *entropy.Fixed {
	return &entropy.Fixed{Floats: []float64{0.99}}
}

// newTestGame builds an engine plus a fresh free-play state on the quiet
// source.
func newTestGame(t *testing.T) (*Engine, *PlayerState, *CampaignState) {
	t.Helper()
	eng := New(testCatalog(t), quiet())
	p, camp := eng.NewGame(Config{})
	return eng, p, camp
}

// assertInvariants checks the cross-cutting state bounds that must hold
// after every operation.
func assertInvariants(t *testing.T, p *PlayerState) {
	t.Helper()
	if p.Cash < 0 || p.Bank < 0 || p.Debt < 0 {
		t.Fatalf("currency went negative: cash=%d bank=%d debt=%d", p.Cash, p.Bank, p.Debt)
	}
	if p.Heat < 0 || p.Heat > MaxHeat {
		t.Fatalf("heat out of range: %d", p.Heat)
	}
	if p.Fingers < 0 || p.Fingers > MaxFingers {
		t.Fatalf("fingers out of range: %d", p.Fingers)
	}
	if p.Health < 0 || p.Health > MaxHealth {
		t.Fatalf("health out of range: %d", p.Health)
	}
	if p.CarriedTotal() > p.Capacity() {
		t.Fatalf("carrying %d over capacity %d", p.CarriedTotal(), p.Capacity())
	}
	if p.Offer != nil && p.Encounter != nil {
		t.Fatalf("offer and encounter populated simultaneously")
	}
	for id, q := range p.Inventory {
		if q < 0 {
			t.Fatalf("negative inventory for %s: %d", id, q)
		}
	}
	for f, r := range p.Relations {
		if r < MinRelation || r > MaxRelation {
			t.Fatalf("relation with %s out of range: %d", f, r)
		}
	}
}
