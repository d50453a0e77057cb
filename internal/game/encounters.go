// Encounter resolvers — law stops, bounty hunters, loan collectors, and
// open faction war share one multi-round shape with per-kind tuning.
package game

import (
	"math"

	"github.com/talgya/kingpin/internal/catalog"
)

// EncounterChoice is the player's move in an active encounter.
type EncounterChoice uint8

const (
	ChoiceRun EncounterChoice = iota
	ChoiceFight
	ChoiceBribe // "pay" / "negotiate" for non-law kinds
)

// tuning holds the per-kind odds and costs. Bounty hunters and collectors
// are deliberately harsher than a standard stop.
type encounterTuning struct {
	runArmed, runUnarmed   float64
	killArmed, killUnarmed float64
	damageLo, damageHi     int
	bribeBase              int64
	repReward              int
}

var tunings = map[EncounterKind]encounterTuning{
	EncounterLaw: {
		runArmed: 0.55, runUnarmed: 0.50,
		killArmed: 0.60, killUnarmed: 0.10,
		damageLo: 5, damageHi: 15,
		bribeBase: 600, repReward: 4,
	},
	EncounterHunter: {
		runArmed: 0.45, runUnarmed: 0.35,
		killArmed: 0.50, killUnarmed: 0.05,
		damageLo: 10, damageHi: 22,
		bribeBase: 1200, repReward: 8,
	},
	EncounterCollector: {
		runArmed: 0.40, runUnarmed: 0.30,
		killArmed: 0.45, killUnarmed: 0.05,
		damageLo: 12, damageHi: 25,
		bribeBase: 1500, repReward: 7,
	},
	EncounterWar: {
		runArmed: 0.50, runUnarmed: 0.40,
		killArmed: 0.55, killUnarmed: 0.08,
		damageLo: 8, damageHi: 18,
		bribeBase: 2500, repReward: 10,
	},
}

// Enforcement style shifts on run and kill odds.
const (
	corruptStyleBonus    = 0.05
	methodicalStylePenalty = 0.10
)

const (
	runFailCashPct  = 0.20
	encounterHeatUp = 6
)

// styleMod returns the additive odds shift for the current region's law.
func (e *Engine) styleMod(p *PlayerState) float64 {
	switch e.Catalog.RegionOf(p.Location).Law {
	case catalog.LawCorrupt:
		return corruptStyleBonus
	case catalog.LawMethodical:
		return -methodicalStylePenalty
	default:
		return 0
	}
}

// EncounterAction resolves one round of the active encounter. The
// encounter slot clears only on a terminal outcome; an unaffordable bribe
// or a survived fight round leaves it pending.
func (e *Engine) EncounterAction(p *PlayerState, camp *CampaignState, choice EncounterChoice) Result {
	var res Result
	enc := p.Encounter
	if enc == nil {
		res.Phase = PhasePlaying
		res.note("Nobody's stopping you.")
		return res
	}
	res.Phase = PhaseCopEncounter

	switch choice {
	case ChoiceRun:
		e.resolveRun(p, camp, enc, &res)
	case ChoiceFight:
		e.resolveFight(p, camp, enc, &res)
	case ChoiceBribe:
		e.resolveBribe(p, camp, enc, &res)
	default:
		res.note("Freeze, fight, pay, or run — pick one.")
	}

	if p.Health <= 0 {
		p.Encounter = nil
		res.Phase = PhaseEnd
		res.note("You didn't walk away from this one.")
		res.effect(EffectSound("death"))
		return res
	}
	if p.Encounter == nil && res.Phase == PhaseCopEncounter {
		res.Phase = PhasePlaying
	}
	return res
}

func (e *Engine) resolveRun(p *PlayerState, camp *CampaignState, enc *Encounter, res *Result) {
	t := tunings[enc.Kind]
	prob := t.runUnarmed
	if p.Armed {
		prob = t.runArmed
	}
	prob += e.styleMod(p)

	if e.Rand.Chance(prob) {
		p.Encounter = nil
		if enc.Kind == EncounterWar {
			e.recordWarRetreat(camp, res)
		}
		p.logEvent("encounter", "Slipped away clean.")
		res.note("You lose them in the alleys.")
		res.effect(EffectSound("run"))
		return
	}

	// Failed run still breaks contact, but it costs: a fifth of your cash
	// dropped in the scramble and part of one stack left behind.
	lost := int64(float64(p.Cash) * runFailCashPct)
	p.spendCash(lost)
	e.dropPartialStack(p, res)
	if enc.Kind == EncounterLaw {
		p.addHeat(encounterHeatUp)
	}
	if enc.Kind == EncounterWar {
		e.recordWarRetreat(camp, res)
	}
	p.Encounter = nil
	p.logEvent("encounter", "Got away ugly: dropped $%d running.", lost)
	res.note("You get clear, but it cost you $%d and part of your stock.", lost)
	res.effect(EffectShake)
}

func (e *Engine) resolveFight(p *PlayerState, camp *CampaignState, enc *Encounter, res *Result) {
	t := tunings[enc.Kind]
	prob := t.killUnarmed
	if p.Armed {
		prob = t.killArmed
	}
	prob += e.styleMod(p)
	enc.Round++

	if e.Rand.Chance(prob) {
		enc.Count--
		if enc.Strength > 0 {
			enc.Strength--
		}
		if enc.Count <= 0 {
			p.Encounter = nil
			p.Reputation += t.repReward
			switch enc.Kind {
			case EncounterLaw:
				p.addHeat(encounterHeatUp * 2)
				p.logEvent("encounter", "Fought off a stop. The city will remember.")
				res.note("You put them all down. The heat on you just went through the roof.")
			case EncounterWar:
				e.recordWarVictory(camp, res)
				p.logEvent("war", "Won a street battle.")
			default:
				p.adjustRelation(enc.Faction, -5)
				p.logEvent("encounter", "Beat back the muscle they sent.")
				res.note("The ones still standing won't forget this.")
			}
			res.effect(EffectSound("fight-win"))
			return
		}
		res.note("One down. %d still coming.", enc.Count)
		res.effect(EffectSound("fight-hit"))
		return
	}

	dmg := e.Rand.IntN(t.damageLo, t.damageHi)
	p.damage(dmg)
	res.note("They got a piece of you — %d damage. %d still standing.", dmg, enc.Count)
	res.effect(EffectShake)
	res.effect(EffectHaptic(2))
}

func (e *Engine) resolveBribe(p *PlayerState, camp *CampaignState, enc *Encounter, res *Result) {
	t := tunings[enc.Kind]
	cost := bribeCost(t.bribeBase, enc.Count, p.NetWorth())

	if p.Cash < cost {
		// No free exit: the standoff stays open.
		res.note("They want $%d. You're holding $%d. They're not going anywhere.", cost, p.Cash)
		return
	}

	p.Cash -= cost
	p.Encounter = nil
	switch enc.Kind {
	case EncounterLaw:
		p.addHeat(-4)
		p.logEvent("encounter", "Bought off a stop for $%d.", cost)
		res.note("$%d changes hands and the badges find somewhere else to be.", cost)
	case EncounterWar:
		e.recordWarRetreat(camp, res)
		p.logEvent("war", "Paid $%d to break off the battle.", cost)
		res.note("You buy the street back for $%d. Nobody calls it a win.", cost)
	default:
		p.adjustRelation(enc.Faction, 2)
		p.logEvent("encounter", "Negotiated off the muscle for $%d.", cost)
		res.note("$%d buys you room to breathe. The debt still stands.", cost)
	}
	res.effect(EffectSound("bribe"))
}

// bribeCost scales with headcount and the logarithm of visible wealth:
// known kingpins pay more.
func bribeCost(base int64, count int, netWorth int64) int64 {
	if count < 1 {
		count = 1
	}
	wealth := float64(netWorth)
	if wealth < 1 {
		wealth = 1
	}
	scale := 1 + 0.25*math.Log10(wealth)
	return int64(float64(base) * float64(count) * scale)
}

// dropPartialStack loses part of one carried stack, largest first.
func (e *Engine) dropPartialStack(p *PlayerState, res *Result) {
	var target catalog.CommodityID
	best := 0
	for i := range e.Catalog.Commodities {
		id := e.Catalog.Commodities[i].ID
		if q := p.Inventory[id]; q > best {
			best = q
			target = id
		}
	}
	if best == 0 {
		return
	}
	dropped := best / 2
	if dropped < 1 {
		dropped = 1
	}
	p.addInventory(target, -dropped)
	res.note("You left %d %s behind.", dropped, e.Catalog.MustCommodity(target).Name)
}

// spawnLaw populates the active-encounter slot with a law stop sized to
// the player's heat.
func (e *Engine) spawnLaw(p *PlayerState) {
	count := 1 + p.Heat/35
	p.Offer = nil // a standoff trumps whatever was on the table
	p.Encounter = &Encounter{
		Kind:     EncounterLaw,
		Count:    count,
		Strength: count,
	}
}

// spawnPursuer populates the slot with a bounty hunter (consignment) or
// collector (loan) sent by a creditor.
func (e *Engine) spawnPursuer(p *PlayerState, kind EncounterKind, faction catalog.FactionID, overdueTurns int) {
	count := 1 + overdueTurns
	if count > 4 {
		count = 4
	}
	p.Offer = nil
	p.Encounter = &Encounter{
		Kind:     kind,
		Count:    count,
		Strength: count + 1,
		Faction:  faction,
	}
}
