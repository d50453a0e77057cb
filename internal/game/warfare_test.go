package game

import (
	"testing"

	"github.com/talgya/kingpin/internal/entropy"
)

func TestDeclareWarGates(t *testing.T) {
	eng, p, camp := newTestGame(t)

	eng.DeclareWar(p, camp, "guild")
	if camp.War != nil {
		t.Fatal("a nobody cannot declare war")
	}

	p.Reputation = warDeclareRep
	eng.DeclareWar(p, camp, "guild")
	w := camp.War
	if w == nil || w.Faction != "guild" || w.Strength != 100 {
		t.Fatalf("war = %+v", w)
	}
	if p.Relations["guild"] != MinRelation {
		t.Fatalf("relation = %d, want bottomed out at %d", p.Relations["guild"], MinRelation)
	}

	// One war at a time.
	w.Wins = 2
	eng.DeclareWar(p, camp, "guild")
	if camp.War.Wins != 2 {
		t.Fatal("re-declaring must not reset the running war")
	}
}

func TestDeclareWarRefusesDefeatedFaction(t *testing.T) {
	eng, p, camp := newTestGame(t)
	p.Reputation = warDeclareRep
	camp.Defeated = append(camp.Defeated, "guild")

	eng.DeclareWar(p, camp, "guild")
	if camp.War != nil {
		t.Fatal("the dead stay dead")
	}
}

func TestBattleFieldsSoldiersAndEvictsOffer(t *testing.T) {
	eng, p, camp := newTestGame(t)
	camp.War = &FactionWar{Faction: "guild", Strength: 100}
	p.Offer = &Offer{Kind: OfferEquipment, Amount: gunPrice}

	res := eng.Battle(p, camp)

	if res.Phase != PhaseCopEncounter {
		t.Fatalf("phase = %s, want cop_encounter", res.Phase)
	}
	enc := p.Encounter
	// WarStrength 8 at full strength: 1 + 8/4 = 3 soldiers.
	if enc == nil || enc.Kind != EncounterWar || enc.Count != 3 {
		t.Fatalf("encounter = %+v, want 3 war soldiers", enc)
	}
	if p.Offer != nil {
		t.Fatal("a battle evicts any pending offer")
	}
}

func TestBattleRequiresEnemyRegion(t *testing.T) {
	eng, p, camp := newTestGame(t)
	p.Reputation = 60
	camp.War = &FactionWar{Faction: "guild", Strength: 100}
	p.Location = "gate" // wrong region entirely

	eng.Battle(p, camp)
	if p.Encounter != nil {
		t.Fatal("the fight happens on their ground, not here")
	}
}

func TestWarVictoryGrindsStrengthToDefeat(t *testing.T) {
	eng, _, camp := newTestGame(t)
	eng.Rand = &entropy.Fixed{Ints: []int{20}}
	camp.War = &FactionWar{Faction: "guild", Strength: 100}

	var res Result
	eng.recordWarVictory(camp, &res)
	if camp.War.Strength != 80 || camp.War.Wins != 1 {
		t.Fatalf("war = %+v, want strength 80 after a 20-point hit", camp.War)
	}

	camp.War.Strength = 10
	eng.recordWarVictory(camp, &res)
	if camp.War != nil {
		t.Fatal("strength at zero ends the war")
	}
	if len(camp.Defeated) != 1 || camp.Defeated[0] != "guild" {
		t.Fatalf("defeated = %v", camp.Defeated)
	}
	if camp.PendingRaid != "wharf" {
		t.Fatalf("pending raid = %s, want the fallen faction's home", camp.PendingRaid)
	}
}

func TestWarRetreatLetsThemRegroup(t *testing.T) {
	eng, _, camp := newTestGame(t)
	camp.War = &FactionWar{Faction: "guild", Strength: 98}

	var res Result
	eng.recordWarRetreat(camp, &res)
	if camp.War.Strength != 100 || camp.War.Losses != 1 {
		t.Fatalf("war = %+v, want strength capped at 100 and one loss", camp.War)
	}
}

func TestRaidClaimsFallenTurf(t *testing.T) {
	eng, p, camp := newTestGame(t)
	camp.PendingRaid = "wharf"
	repBefore := p.Reputation

	// Standing elsewhere: nothing happens.
	eng.Raid(p, camp)
	if len(p.Territory) != 0 {
		t.Fatal("the spoils must be claimed in person")
	}

	p.Location = "wharf"
	eng.Raid(p, camp)
	if p.Territory["wharf"] == nil {
		t.Fatal("raid should hand over the block")
	}
	if camp.PendingRaid != "" {
		t.Fatal("the raid claim is one-shot")
	}
	if p.Reputation != repBefore+15 {
		t.Fatalf("reputation = %d, want +15", p.Reputation)
	}
}
