// Open faction warfare — declaration, street battles, and territory raids.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

const (
	// warDeclareRep gates declaring war: nobodies don't start wars.
	warDeclareRep = 40

	warVictoryHitLo = 15
	warVictoryHitHi = 30
	warRegroupGain  = 5
)

// DeclareWar opens hostilities with a faction. One war at a time; defeated
// factions stay defeated.
func (e *Engine) DeclareWar(p *PlayerState, camp *CampaignState, id catalog.FactionID) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	f := e.Catalog.MustFaction(id)
	if camp.War != nil {
		res.note("You're already at war with %s. One fire at a time.", e.Catalog.MustFaction(camp.War.Faction).Name)
		return res
	}
	for _, d := range camp.Defeated {
		if d == id {
			res.note("%s are already broken. Let the dead lie.", f.Name)
			return res
		}
	}
	if p.Reputation < warDeclareRep {
		res.note("Nobody goes to war behind a nobody. Make a name first.")
		return res
	}

	camp.War = &FactionWar{Faction: id, Strength: 100}
	p.adjustRelation(id, MinRelation)
	p.logEvent("war", "Declared war on %s.", f.Name)
	res.note("It's war with %s. Their turf is a battlefield now.", f.Name)
	res.effect(EffectSound("war-declare"))
	return res
}

// Battle takes the fight to the enemy. The player must be standing in the
// enemy's home region; the battle itself runs through the war resolver as
// an active encounter.
func (e *Engine) Battle(p *PlayerState, camp *CampaignState) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if camp.War == nil {
		res.note("You're not at war with anyone.")
		return res
	}
	f := e.Catalog.MustFaction(camp.War.Faction)
	home := e.Catalog.MustLocation(f.Home)
	here := e.Catalog.MustLocation(p.Location)
	if here.Region != home.Region {
		res.note("%s hold %s. Take the fight there.", f.Name, e.Catalog.MustRegion(home.Region).Name)
		return res
	}

	soldiers := 1 + int(float64(f.WarStrength)*camp.War.Strength/100)/4
	p.Offer = nil
	p.Encounter = &Encounter{
		Kind:     EncounterWar,
		Count:    soldiers,
		Strength: soldiers,
		Faction:  f.ID,
	}
	p.logEvent("war", "Forced a battle with %s: %d soldiers in the street.", f.Name, soldiers)
	res.Phase = PhaseCopEncounter
	res.note("%d of %s's soldiers come out to meet you.", soldiers, f.Name)
	res.effect(EffectSound("war-battle"))
	return res
}

// recordWarVictory books a won battle and checks for total defeat, which
// queues a raid on the fallen faction's home turf.
func (e *Engine) recordWarVictory(camp *CampaignState, res *Result) {
	w := camp.War
	if w == nil {
		return
	}
	w.Wins++
	w.Strength -= float64(e.Rand.IntN(warVictoryHitLo, warVictoryHitHi))
	f := e.Catalog.MustFaction(w.Faction)
	if w.Strength <= 0 {
		camp.Defeated = append(camp.Defeated, w.Faction)
		camp.PendingRaid = f.Home
		camp.War = nil
		res.note("%s are finished. Their seat at %s is there for the taking.",
			f.Name, e.Catalog.MustLocation(f.Home).Name)
		res.effect(EffectSound("war-won"))
		return
	}
	res.note("The street is yours today. %s are at %.0f%% and falling.", f.Name, w.Strength)
}

// recordWarRetreat books a withdrawal; the enemy regroups.
func (e *Engine) recordWarRetreat(camp *CampaignState, res *Result) {
	w := camp.War
	if w == nil {
		return
	}
	w.Losses++
	w.Strength += warRegroupGain
	if w.Strength > 100 {
		w.Strength = 100
	}
}

// Raid claims the pending territory left by a defeated faction. The player
// must be standing on it.
func (e *Engine) Raid(p *PlayerState, camp *CampaignState) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if camp.PendingRaid == "" {
		res.note("There's nothing to raid.")
		return res
	}
	if p.Location != camp.PendingRaid {
		res.note("The spoils are at %s. Go take them.", e.Catalog.MustLocation(camp.PendingRaid).Name)
		return res
	}

	loc := e.Catalog.MustLocation(camp.PendingRaid)
	p.Territory[loc.ID] = &Territory{
		TributeRate: loc.TributeRate,
		Stash:       make(map[catalog.CommodityID]int),
	}
	camp.PendingRaid = ""
	p.Reputation += 15
	p.logEvent("war", "Took %s as spoils of war.", loc.Name)
	res.note("%s is yours now. Tribute starts tomorrow.", loc.Name)
	res.effect(EffectSound("territory"))
	e.checkMilestones(p, &res)
	return res
}
