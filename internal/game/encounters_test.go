package game

import (
	"testing"

	"github.com/talgya/kingpin/internal/entropy"
)

func TestRunSuccessClearsEncounterClean(t *testing.T) {
	eng, p, camp := newTestGame(t)
	eng.Rand = &entropy.Fixed{Floats: []float64{0.0}} // escape roll succeeds
	p.Cash = 1000
	p.Inventory["salt"] = 10
	p.Encounter = &Encounter{Kind: EncounterLaw, Count: 2, Strength: 2}

	res := eng.EncounterAction(p, camp, ChoiceRun)

	if p.Encounter != nil {
		t.Fatal("successful run must clear the encounter")
	}
	if res.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", res.Phase)
	}
	if p.Cash != 1000 || p.Inventory["salt"] != 10 {
		t.Fatal("clean escape must cost nothing")
	}
}

func TestRunFailureStillBreaksContactAtAPrice(t *testing.T) {
	eng, p, camp := newTestGame(t)
	eng.Rand = &entropy.Fixed{Floats: []float64{0.99}} // escape roll fails
	p.Cash = 1000
	p.Inventory["salt"] = 10
	p.AvgCost["salt"] = 50
	heatBefore := p.Heat
	p.Encounter = &Encounter{Kind: EncounterLaw, Count: 2, Strength: 2}

	res := eng.EncounterAction(p, camp, ChoiceRun)

	if p.Encounter != nil {
		t.Fatal("a failed run still breaks contact")
	}
	if res.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", res.Phase)
	}
	if p.Cash != 800 {
		t.Fatalf("cash = %d, want 800 (dropped a fifth)", p.Cash)
	}
	if p.Inventory["salt"] != 5 {
		t.Fatalf("salt = %d, want 5 (half the stack left behind)", p.Inventory["salt"])
	}
	if p.Heat <= heatBefore {
		t.Fatal("fleeing a law stop should raise heat")
	}
}

func TestFightWinsDownToZeroAndRewards(t *testing.T) {
	eng, p, camp := newTestGame(t)
	eng.Rand = &entropy.Fixed{Floats: []float64{0.0, 0.0}} // every kill roll lands
	p.Armed = true
	p.Encounter = &Encounter{Kind: EncounterHunter, Count: 2, Strength: 3, Faction: "guild"}
	repBefore := p.Reputation

	res := eng.EncounterAction(p, camp, ChoiceFight)
	if p.Encounter == nil {
		t.Fatal("first round should only drop one of two")
	}
	if p.Encounter.Count != 1 {
		t.Fatalf("count = %d, want 1", p.Encounter.Count)
	}
	if res.Phase != PhaseCopEncounter {
		t.Fatalf("phase = %s, want cop_encounter while the standoff holds", res.Phase)
	}

	res = eng.EncounterAction(p, camp, ChoiceFight)
	if p.Encounter != nil {
		t.Fatal("last one down should clear the encounter")
	}
	if res.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", res.Phase)
	}
	if p.Reputation != repBefore+tunings[EncounterHunter].repReward {
		t.Fatalf("reputation = %d, want +%d", p.Reputation, tunings[EncounterHunter].repReward)
	}
	if p.Relations["guild"] != -5 {
		t.Fatalf("relation = %d, want -5 with the faction that sent them", p.Relations["guild"])
	}
}

func TestFightMissTakesDamageAndHolds(t *testing.T) {
	eng, p, camp := newTestGame(t)
	eng.Rand = &entropy.Fixed{Floats: []float64{0.99}, Ints: []int{12}}
	p.Encounter = &Encounter{Kind: EncounterLaw, Count: 2, Strength: 2}

	res := eng.EncounterAction(p, camp, ChoiceFight)

	if p.Encounter == nil {
		t.Fatal("a missed swing must not clear the encounter")
	}
	if p.Health != startHealth-12 {
		t.Fatalf("health = %d, want %d", p.Health, startHealth-12)
	}
	if res.Phase != PhaseCopEncounter {
		t.Fatalf("phase = %s, want cop_encounter", res.Phase)
	}
}

func TestFightToDeathEndsGame(t *testing.T) {
	eng, p, camp := newTestGame(t)
	eng.Rand = &entropy.Fixed{Floats: []float64{0.99}, Ints: []int{25}}
	p.Health = 20
	p.Encounter = &Encounter{Kind: EncounterCollector, Count: 3, Strength: 4, Faction: "guild"}

	res := eng.EncounterAction(p, camp, ChoiceFight)

	if res.Phase != PhaseEnd {
		t.Fatalf("phase = %s, want end at zero health", res.Phase)
	}
	if p.Encounter != nil {
		t.Fatal("death clears the encounter slot")
	}
}

func TestBribeUnaffordableLeavesStandoffOpen(t *testing.T) {
	eng, p, camp := newTestGame(t)
	p.Cash = 10
	p.Bank = 0
	p.Debt = 0
	p.Encounter = &Encounter{Kind: EncounterLaw, Count: 2, Strength: 2}

	res := eng.EncounterAction(p, camp, ChoiceBribe)

	if p.Encounter == nil {
		t.Fatal("an unpaid bribe is no exit")
	}
	if res.Phase != PhaseCopEncounter {
		t.Fatalf("phase = %s, want cop_encounter", res.Phase)
	}
	if p.Cash != 10 {
		t.Fatalf("cash = %d, want 10 untouched", p.Cash)
	}
}

func TestBribePaidClearsLawStopAndShedsHeat(t *testing.T) {
	eng, p, camp := newTestGame(t)
	p.Cash = 100_000
	p.Heat = 50
	p.Encounter = &Encounter{Kind: EncounterLaw, Count: 1, Strength: 1}

	res := eng.EncounterAction(p, camp, ChoiceBribe)

	if p.Encounter != nil {
		t.Fatal("paid bribe must clear the stop")
	}
	if res.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing", res.Phase)
	}
	if p.Cash >= 100_000 {
		t.Fatal("bribe must cost cash")
	}
	if p.Heat != 46 {
		t.Fatalf("heat = %d, want 46 after greasing the badges", p.Heat)
	}
}

func TestBribeCostScalesWithHeadcountAndWealth(t *testing.T) {
	poor := bribeCost(600, 1, 1000)
	rich := bribeCost(600, 1, 1_000_000)
	if rich <= poor {
		t.Fatalf("wealth should raise the price: poor=%d rich=%d", poor, rich)
	}
	one := bribeCost(600, 1, 10_000)
	three := bribeCost(600, 3, 10_000)
	if three != one*3 {
		t.Fatalf("cost should scale linearly with headcount: one=%d three=%d", one, three)
	}
}

func TestSpawnLawSizesToHeatAndEvictsOffer(t *testing.T) {
	eng, p, _ := newTestGame(t)
	p.Heat = 80
	p.Offer = &Offer{Kind: OfferEquipment, Amount: 900}

	eng.spawnLaw(p)

	if p.Offer != nil {
		t.Fatal("a standoff must evict any pending offer")
	}
	if p.Encounter == nil || p.Encounter.Count != 3 {
		t.Fatalf("encounter = %+v, want 3 officers at heat 80", p.Encounter)
	}
	assertInvariants(t, p)
}

func TestSpawnPursuerCapsHeadcount(t *testing.T) {
	eng, p, _ := newTestGame(t)
	eng.spawnPursuer(p, EncounterHunter, "guild", 9)
	if p.Encounter.Count != 4 {
		t.Fatalf("count = %d, want capped at 4", p.Encounter.Count)
	}
	if p.Encounter.Faction != "guild" {
		t.Fatalf("faction = %s, want guild", p.Encounter.Faction)
	}
}

func TestEncounterActionWithoutEncounter(t *testing.T) {
	eng, p, camp := newTestGame(t)
	res := eng.EncounterAction(p, camp, ChoiceRun)
	if res.Phase != PhasePlaying {
		t.Fatalf("phase = %s, want playing when nothing is active", res.Phase)
	}
}
