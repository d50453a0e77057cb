// Informant — hired tipster lifecycle: tips, loyalty drift, betrayal.
package game

const (
	// tipCostPerSkill prices a fresh tip by informant quality.
	tipCostPerSkill = 400

	// Loyalty drifts down over time; at the floor the informant may flip.
	loyaltyDriftProb  = 0.30
	betrayalLoyalty   = 3
	betrayalProb      = 0.04
	betrayalHeatSpike = 30
)

var informantNames = []string{"Mouse", "Ledger", "Two-Coats", "The Deacon", "Pinky", "Whistler"}

// AskTip buys a forecast from the hired informant. One pending tip at a
// time; each ask costs cash and a point of loyalty — nobody likes being
// leaned on.
func (e *Engine) AskTip(p *PlayerState) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	inf := p.Informant
	if inf == nil || inf.Status != InformantHired {
		res.note("You don't have ears on the street.")
		return res
	}
	if inf.Tip != nil {
		res.note("%s already gave you something. Let it play out.", inf.Name)
		return res
	}
	cost := int64(tipCostPerSkill * inf.Skill)
	if p.Cash < cost {
		res.note("%s wants $%d up front.", inf.Name, cost)
		return res
	}

	p.Cash -= cost
	if inf.Loyalty > 0 {
		inf.Loyalty--
	}
	tip := e.generateTip(p)
	inf.Tip = tip

	cm := e.Catalog.MustCommodity(tip.Commodity)
	direction := "crash"
	if tip.Spike {
		direction = "spike"
	}
	p.logEvent("informant", "%s whispers: %s will %s soon.", inf.Name, cm.Name, direction)
	res.note("%s leans in: \"%s is going to %s. Give it %d days.\"", inf.Name, cm.Name, direction, tip.Countdown)
	res.effect(EffectSound("tip"))
	return res
}

// driftInformant runs per-travel loyalty decay and the betrayal roll. A
// betrayal kills the arrangement and hands the player's movements to the
// law.
func (e *Engine) driftInformant(p *PlayerState, res *Result) {
	inf := p.Informant
	if inf == nil || inf.Status != InformantHired {
		return
	}
	if inf.Loyalty > 0 && e.Rand.Chance(loyaltyDriftProb) {
		inf.Loyalty--
	}
	if inf.Loyalty <= betrayalLoyalty && e.Rand.Chance(betrayalProb) {
		inf.Status = InformantDead
		inf.Tip = nil
		p.addHeat(betrayalHeatSpike)
		p.logEvent("informant", "%s sold you out. The street settled it.", inf.Name)
		res.note("%s talked to the wrong people. The street dealt with them, but the law knows your face now.", inf.Name)
		res.effect(EffectShake)
		res.effect(EffectSound("betrayal"))
	}
}
