// Travel orchestrator — the top-level turn driver. One travel resolves the
// whole day sequence in strict order: validation, fare and clock, debt and
// bank accrual, heat decay, tribute, customs, market refresh, credit
// aging, missions, street hazards, the law-encounter roll, offer
// generation, and finally the phase decision.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

// Fares and movement.
const (
	fareIntraRegion = 100
	fareInterRegion = 350

	// Wealth tiers scale fares upward: known kingpins pay more.
	fareWealthTier1     = 100_000
	fareWealthTier2     = 500_000
	fareWealthTier1Mult = 1.5
	fareWealthTier2Mult = 2.5

	// fingersTravelPenalty adds a day below this many fingers.
	fingersTravelPenalty = 4
)

// Heat decay and floors.
const (
	heatDecayLo = 4
	heatDecayHi = 10

	heatFloorTier1 = 10 // net worth > fareWealthTier1
	heatFloorTier2 = 20 // net worth > fareWealthTier2
)

// Customs.
const (
	customsVolumeWeight = 0.20
	customsHeatWeight   = 0.25
	customsMinProb      = 0.05
	customsMaxProb      = 0.75
	customsFinePct      = 0.30
	customsHeatGain     = 8
)

// Street hazards and the law.
const (
	muggingProb = 0.06

	lawBaseProb       = 0.12
	lawHeatWeight     = 0.30
	lawRelationFriend = 20
	lawFriendDiscount = 0.03
	lawMaxProb        = 0.65
)

// Fare quotes the cost of moving to dest from the player's position.
func (e *Engine) Fare(p *PlayerState, dest catalog.LocationID) int64 {
	from := e.Catalog.MustLocation(p.Location)
	to := e.Catalog.MustLocation(dest)
	fare := int64(fareIntraRegion)
	if from.Region != to.Region {
		fare = fareInterRegion
	}
	nw := p.NetWorth()
	switch {
	case nw > fareWealthTier2:
		fare = int64(float64(fare) * fareWealthTier2Mult)
	case nw > fareWealthTier1:
		fare = int64(float64(fare) * fareWealthTier1Mult)
	}
	return int64(float64(fare) * catalog.PersonaByID(p.Persona).FareMult)
}

// Travel moves the player and resolves the full day sequence. The
// returned phase is playing unless an encounter interrupts, the level
// clock runs out, or the player doesn't survive the trip.
func (e *Engine) Travel(p *PlayerState, camp *CampaignState, dest catalog.LocationID) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}

	// Step 1: same place, no trip.
	if dest == p.Location {
		res.note("You're already here.")
		return res
	}

	// Step 2: locks and fare.
	to, ok := e.Catalog.Location(dest)
	if !ok {
		res.note("No such place.")
		return res
	}
	from := e.Catalog.MustLocation(p.Location)
	destRegion := e.Catalog.MustRegion(to.Region)
	if p.Reputation < destRegion.MinReputation {
		res.note("%s doesn't open its doors to a %s. Come back with a name.",
			destRegion.Name, catalog.RankFor(p.Reputation))
		return res
	}
	if lvl := currentLevel(camp); lvl > 0 && destRegion.MinLevel > lvl {
		res.note("%s is out of your league for now.", destRegion.Name)
		return res
	}
	fare := e.Fare(p, dest)
	if fare > p.Cash {
		res.note("The ride to %s costs $%d and you're holding $%d.", to.Name, fare, p.Cash)
		return res
	}

	// Step 3: move, burn days, pay the fare.
	regionChanged := from.Region != to.Region
	days := 1
	if regionChanged {
		days = 2
	}
	if p.Fingers < fingersTravelPenalty {
		days++ // a half-crippled courier moves slowly
	}
	p.Day += days
	p.Cash -= fare
	arrival := dest
	if regionChanged {
		arrival = destRegion.Arrival
	}
	p.Location = arrival
	loc := e.Catalog.MustLocation(arrival)
	res.note("You arrive at %s. Day %d.", loc.Name, p.Day)

	// Step 4: debts and deposits compound.
	p.Debt = compound(p.Debt, debtDailyRate, days)
	p.Bank = compound(p.Bank, bankDailyRate, days)

	// Step 5: heat cools, but never below your reputation's shadow.
	e.decayHeat(p, destRegion, loc)

	// Step 6: tribute.
	e.creditTribute(p, days, &res)

	// Step 7: customs on the region line.
	if regionChanged {
		e.customsCheck(p, destRegion, &res)
	}

	// Step 8: tips age, market rolls.
	p.tickTip(days)
	e.refreshMarket(p, camp)

	// Step 9: credit terms advance; due or overdue instruments resolve.
	e.ageCreditInstruments(p, days)
	e.resolveDueCredit(p, &res)

	// Steps 10–12 only run if a creditor didn't just corner the player.
	if p.Encounter == nil {
		// Step 10: missions reachable here resolve.
		e.resolveMission(p, days, &res)

		// Step 11: street hazards.
		e.applyExtortion(p, &res)
		e.driftInformant(p, &res)
		e.rollMugging(p, &res)

		// Step 12: the law.
		e.rollLawEncounter(p, loc, destRegion, &res)
	}

	// Step 13: one offer at most, milestones, then the phase decision.
	e.maybeGenerateOffer(p, camp, &res)
	e.checkMilestones(p, &res)
	return e.decidePhase(p, camp, res)
}

// decayHeat sheds heat and clamps it to the wealth-scaled floor: richer
// players never fully cool off.
func (e *Engine) decayHeat(p *PlayerState, region *catalog.Region, loc *catalog.Location) {
	decay := e.Rand.IntN(heatDecayLo, heatDecayHi)
	decay += catalog.PersonaByID(p.Persona).HeatDecayBonus
	decay += int(float64(p.Heat) * region.HeatDecay)

	floor := 0
	switch nw := p.NetWorth(); {
	case nw > fareWealthTier2:
		floor = heatFloorTier2
	case nw > fareWealthTier1:
		floor = heatFloorTier1
	}

	p.Heat -= decay
	if p.Heat < floor {
		p.Heat = floor
	}
	p.addHeat(loc.HeatMod)
}

// customsCheck runs the inter-region inspection: detection probability
// from strictness, carried volume, and heat; contraband is preferentially
// seized.
func (e *Engine) customsCheck(p *PlayerState, region *catalog.Region, res *Result) {
	carried := p.CarriedTotal()
	if carried == 0 {
		return
	}

	prob := region.Strictness
	if cap := p.Capacity(); cap > 0 {
		prob += float64(carried) / float64(cap) * customsVolumeWeight
	}
	prob += float64(p.Heat) / MaxHeat * customsHeatWeight
	if prob < customsMinProb {
		prob = customsMinProb
	}
	if prob > customsMaxProb {
		prob = customsMaxProb
	}

	if !e.Rand.Chance(prob) {
		p.logEvent("customs", "Walked a load through the %s checkpoint clean.", region.Name)
		return
	}

	// Detected: seize 30–80% of one stack, contraband first.
	target := e.pickSeizureTarget(p)
	cm := e.Catalog.MustCommodity(target)
	held := p.Inventory[target]
	seizedPct := float64(e.Rand.IntN(30, 80)) / 100
	seized := int(float64(held) * seizedPct)
	if seized < 1 {
		seized = 1
	}
	p.addInventory(target, -seized)

	street := p.Prices[target]
	if street <= 0 {
		street = cm.MinPrice
	}
	fine := int64(float64(street) * float64(seized) * customsFinePct)
	if fine > p.Cash {
		fine = p.Cash
	}
	p.spendCash(fine)
	p.addHeat(customsHeatGain)

	p.logEvent("customs", "Checkpoint took %d %s and a $%d fine. It's on your record.", seized, cm.Name, fine)
	res.note("Checkpoint. They took %d %s and fined you $%d. Your name went in a book.", seized, cm.Name, fine)
	res.Effects = append(res.Effects, EffectShake, EffectSound("customs"))
}

// pickSeizureTarget prefers the largest contraband stack, falling back to
// the largest stack of anything.
func (e *Engine) pickSeizureTarget(p *PlayerState) catalog.CommodityID {
	var best, bestAny catalog.CommodityID
	bestQty, bestAnyQty := 0, 0
	for i := range e.Catalog.Commodities {
		cm := &e.Catalog.Commodities[i]
		q := p.Inventory[cm.ID]
		if q == 0 {
			continue
		}
		if q > bestAnyQty {
			bestAny, bestAnyQty = cm.ID, q
		}
		if cm.Contraband && q > bestQty {
			best, bestQty = cm.ID, q
		}
	}
	if bestQty > 0 {
		return best
	}
	return bestAny
}

// resolveDueCredit handles due and overdue instruments after aging. At the
// creditor's door a due instrument settles immediately; elsewhere the
// overdue counter runs, with forced settlement after the grace window and
// pursuit rolls before it.
func (e *Engine) resolveDueCredit(p *PlayerState, res *Result) {
	if c := p.Consignment; c != nil && c.DaysLeft <= 0 {
		f := e.Catalog.MustFaction(c.Faction)
		switch {
		case p.Location == f.Home:
			e.settleConsignment(p, c.OverdueTurns > 0, res)
		case c.OverdueTurns >= overdueGrace:
			// They stopped waiting at home and came to you.
			res.note("%s stopped waiting.", f.Name)
			e.settleConsignment(p, true, res)
		default:
			c.OverdueTurns++
			prob := pursuitBaseProb + pursuitPerTurnProb*float64(c.OverdueTurns)
			if e.Rand.Chance(prob) {
				e.spawnPursuer(p, EncounterHunter, c.Faction, c.OverdueTurns)
				res.note("A bounty hunter working for %s steps out of a doorway.", f.Name)
				res.effect(EffectSound("hunter"))
				return
			}
			res.note("The %s consignment is past due. Somewhere, a ledger is open.", f.Name)
		}
	}
	if l := p.Loan; l != nil && l.DaysLeft <= 0 && p.Encounter == nil {
		f := e.Catalog.MustFaction(l.Faction)
		switch {
		case p.Location == f.Home:
			e.settleLoan(p, l.OverdueTurns > 0, res)
		case l.OverdueTurns >= overdueGrace:
			res.note("%s stopped waiting.", f.Name)
			e.settleLoan(p, true, res)
		default:
			l.OverdueTurns++
			prob := pursuitBaseProb + pursuitPerTurnProb*float64(l.OverdueTurns)
			if e.Rand.Chance(prob) {
				e.spawnPursuer(p, EncounterCollector, l.Faction, l.OverdueTurns)
				res.note("%s sent a collector. He's not here to talk.", f.Name)
				res.effect(EffectSound("collector"))
				return
			}
			res.note("The %s loan is past due. Their patience has a price.", f.Name)
		}
	}
}

// rollMugging is the general street-robbery hazard.
func (e *Engine) rollMugging(p *PlayerState, res *Result) {
	if p.Cash <= 0 || !e.Rand.Chance(muggingProb) {
		return
	}
	pct := float64(e.Rand.IntN(10, 25)) / 100
	lost := int64(float64(p.Cash) * pct)
	if lost < 1 {
		lost = 1
	}
	p.spendCash(lost)
	p.damage(e.Rand.IntN(2, 8))
	p.logEvent("street", "Mugged for $%d.", lost)
	res.note("Two kids with a knife took $%d off you. Embarrassing.", lost)
	res.Effects = append(res.Effects, EffectShake, EffectHaptic(1))
}

// rollLawEncounter runs the per-travel law stop probability. Carrying
// nothing means nothing to find; no stop.
func (e *Engine) rollLawEncounter(p *PlayerState, loc *catalog.Location, region *catalog.Region, res *Result) {
	if p.CarriedTotal() == 0 {
		return
	}
	prob := lawBaseProb
	prob += float64(p.Heat) / MaxHeat * lawHeatWeight
	prob += region.LawRisk
	prob += catalog.PersonaByID(p.Persona).EncounterMod
	if loc.Turf != "" && p.Relation(loc.Turf) >= lawRelationFriend {
		prob -= lawFriendDiscount // friends watch the corners
	}
	if prob > lawMaxProb {
		prob = lawMaxProb
	}

	if !e.Rand.Chance(prob) {
		return
	}
	e.spawnLaw(p)
	res.note("Blue lights. %d officers want a word about your bags.", p.Encounter.Count)
	res.effect(EffectSound("siren"))
}

// decidePhase closes out the travel: death conditions first, then the day
// budget against the level goal.
func (e *Engine) decidePhase(p *PlayerState, camp *CampaignState, res Result) Result {
	if p.Health <= 0 || p.Fingers <= 0 {
		p.Encounter = nil
		res.Phase = PhaseEnd
		res.note("The street finally collected. Game over.")
		res.effect(EffectSound("death"))
		return res
	}
	if p.Day <= p.DayLimit {
		if p.Encounter != nil {
			res.Phase = PhaseCopEncounter
		}
		return res
	}

	// Clock's out.
	p.Encounter = nil
	if lvl := currentLevel(camp); lvl > 0 {
		if p.NetWorth() >= camp.NetWorthGoal {
			camp.TotalProfit += p.Stats.Profit
			if lvl >= FinalLevel {
				res.Phase = PhaseWin
				res.note("Three levels, one city, and it's yours. You win.")
				res.effect(EffectSound("win"))
			} else {
				res.Phase = PhaseLevelComplete
				res.note("The month is out and the numbers are good. Level %d cleared.", lvl)
				res.effect(EffectSound("level-clear"))
			}
		} else {
			res.Phase = PhaseEnd
			res.note("The month is out and you came up short. The city moves on without you.")
		}
		return res
	}
	if p.NetWorth() > 0 {
		res.Phase = PhaseWin
		res.note("Time's up — and you're ahead. Walk away while you can.")
		res.effect(EffectSound("win"))
	} else {
		res.Phase = PhaseEnd
		res.note("Time's up, and the books say you lost.")
	}
	return res
}
