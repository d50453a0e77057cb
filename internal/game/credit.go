// Credit instruments — consignment and faction cash loans: accrual,
// voluntary payment, and forced settlement scoring.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

// SettlementTier classifies how a settlement went.
type SettlementTier uint8

const (
	SettleFull SettlementTier = iota
	SettlePartial
	SettlePoor
)

const (
	// Settlement thresholds, percent of debt covered.
	fullThreshold    = 100
	partialThreshold = 70

	// overdueGrace is how many overdue travels pass before the creditor
	// forces settlement wherever the player stands.
	overdueGrace = 3

	// Collector pursuit odds while overdue, per travel.
	pursuitBaseProb    = 0.20
	pursuitPerTurnProb = 0.15
)

// classifySettlement maps percent-covered to a tier. Overdue settlement
// shifts every threshold one tier worse: even 100% coverage only earns
// partial once the term has blown.
func classifySettlement(owed, paid int64, overdue bool) SettlementTier {
	if owed <= 0 {
		return SettleFull
	}
	pct := paid * 100 / owed
	switch {
	case pct >= fullThreshold:
		if overdue {
			return SettlePartial
		}
		return SettleFull
	case pct >= partialThreshold:
		if overdue {
			return SettlePoor
		}
		return SettlePartial
	default:
		return SettlePoor
	}
}

// creditCap is the faction's lending ceiling, scaled by standing.
func creditCap(f *catalog.Faction, relation int) int64 {
	scale := 1 + float64(relation)/50
	if scale < 0.3 {
		scale = 0.3
	}
	return int64(float64(f.CreditBase) * scale)
}

// ageCreditInstruments accrues interest and burns term days during travel.
func (e *Engine) ageCreditInstruments(p *PlayerState, days int) {
	if c := p.Consignment; c != nil {
		f := e.Catalog.MustFaction(c.Faction)
		c.Owed = compound(c.Owed, f.ConsignRate, days)
		c.DaysLeft -= days
	}
	if l := p.Loan; l != nil {
		f := e.Catalog.MustFaction(l.Faction)
		l.Owed = compound(l.Owed, f.LoanRate, days)
		l.DaysLeft -= days
	}
}

func compound(amount int64, rate float64, days int) int64 {
	v := float64(amount)
	for i := 0; i < days; i++ {
		v *= 1 + rate
	}
	return int64(v)
}

// PayConsignment pays cash against the consignment outside any settlement
// window. Paying it to zero completes the instrument cleanly — full-tier
// standing reward, inventory untouched.
func (e *Engine) PayConsignment(p *PlayerState, amount int64) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	c := p.Consignment
	if c == nil {
		res.note("You don't owe anyone on consignment.")
		return res
	}
	if amount <= 0 || amount > p.Cash {
		res.note("You're holding $%d.", p.Cash)
		return res
	}
	if amount > c.Owed {
		amount = c.Owed
	}
	p.Cash -= amount
	c.Owed -= amount

	f := e.Catalog.MustFaction(c.Faction)
	if c.Owed <= 0 {
		p.Consignment = nil
		p.CreditsCompleted++
		p.adjustRelation(f.ID, consignFullRelation)
		p.Reputation += consignFullRep
		p.logEvent("credit", "Cleared the %s consignment in full.", f.Name)
		res.note("Paid off. %s remember who settles clean.", f.Name)
		res.effect(EffectSound("paid"))
	} else {
		res.note("Paid $%d down. $%d still riding with %s.", amount, c.Owed, f.Name)
	}
	e.checkMilestones(p, &res)
	return res
}

// PayLoan pays cash against the faction loan; zeroing it completes the
// instrument with full-tier standing.
func (e *Engine) PayLoan(p *PlayerState, amount int64) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	l := p.Loan
	if l == nil {
		res.note("No faction loan outstanding.")
		return res
	}
	if amount <= 0 || amount > p.Cash {
		res.note("You're holding $%d.", p.Cash)
		return res
	}
	if amount > l.Owed {
		amount = l.Owed
	}
	p.Cash -= amount
	l.Owed -= amount

	f := e.Catalog.MustFaction(l.Faction)
	if l.Owed <= 0 {
		p.Loan = nil
		p.CreditsCompleted++
		p.adjustRelation(f.ID, loanFullRelation)
		p.Reputation += loanFullRep
		p.logEvent("credit", "Cleared the %s loan in full.", f.Name)
		res.note("Loan settled. %s will deal with you again.", f.Name)
		res.effect(EffectSound("paid"))
	} else {
		res.note("Paid $%d down. $%d still owed to %s.", amount, l.Owed, f.Name)
	}
	e.checkMilestones(p, &res)
	return res
}

// Settlement tier consequences. Consignment shortfalls cost fingers; loan
// shortfalls cost money and stock instead.
const (
	consignFullRelation    = 8
	consignFullRep         = 5
	consignPartialRelation = -3
	consignPoorRelation    = -8

	loanFullRelation    = 6
	loanFullRep         = 3
	loanPartialRelation = -4
	loanPoorRelation    = -10
)

// collectPayment gathers what the player can cover: cash first, then
// inventory liquidated at current prices with preferred goods sold first.
// Returns the total collected.
func (e *Engine) collectPayment(p *PlayerState, owed int64, preferred catalog.CommodityID, res *Result) int64 {
	paid := p.Cash
	if paid > owed {
		paid = owed
	}
	p.Cash -= paid
	if paid >= owed {
		return paid
	}

	order := []catalog.CommodityID{preferred}
	for i := range e.Catalog.Commodities {
		if id := e.Catalog.Commodities[i].ID; id != preferred {
			order = append(order, id)
		}
	}
	for _, id := range order {
		held := p.Inventory[id]
		if held == 0 {
			continue
		}
		unit := p.Prices[id]
		if unit <= 0 {
			unit = e.Catalog.MustCommodity(id).MinPrice
		}
		for held > 0 && paid < owed {
			held--
			paid += unit
		}
		taken := p.Inventory[id] - held
		if taken > 0 {
			p.addInventory(id, -taken)
			res.note("They took %d %s off you against the debt.", taken, e.Catalog.MustCommodity(id).Name)
		}
		if paid >= owed {
			break
		}
	}
	if paid > owed {
		paid = owed
	}
	return paid
}

// settleConsignment forces the consignment closed and applies the tier
// consequences. overdue shifts the scoring one tier worse.
func (e *Engine) settleConsignment(p *PlayerState, overdue bool, res *Result) {
	c := p.Consignment
	f := e.Catalog.MustFaction(c.Faction)
	owed := c.Owed
	paid := e.collectPayment(p, owed, c.Commodity, res)
	tier := classifySettlement(owed, paid, overdue)
	p.Consignment = nil

	switch tier {
	case SettleFull:
		p.CreditsCompleted++
		p.adjustRelation(f.ID, consignFullRelation)
		p.Reputation += consignFullRep
		p.logEvent("credit", "Settled the %s consignment in full.", f.Name)
		res.note("Squared with %s. Word gets around.", f.Name)
		res.effect(EffectSound("paid"))
	case SettlePartial:
		p.CreditsCompleted++
		p.loseFingers(1)
		p.adjustRelation(f.ID, consignPartialRelation)
		p.logEvent("credit", "Came up short with %s. They took a finger.", f.Name)
		res.note("You covered $%d of $%d. %s took a finger to remember them by.", paid, owed, f.Name)
		res.effect(EffectShake)
		res.effect(EffectHaptic(2))
	case SettlePoor:
		p.loseFingers(2)
		p.damage(e.Rand.IntN(10, 25))
		p.adjustRelation(f.ID, consignPoorRelation)
		p.logEvent("credit", "Stiffed %s badly. Two fingers and a beating.", f.Name)
		res.note("$%d against $%d owed. %s made an example of you: two fingers and a beating.", paid, owed, f.Name)
		res.effect(EffectShake)
		res.effect(EffectHaptic(3))
	}
}

// settleLoan forces the cash loan closed. Shortfalls here cost money and
// stock, not fingers — the Bratva want their principal, not trophies.
func (e *Engine) settleLoan(p *PlayerState, overdue bool, res *Result) {
	l := p.Loan
	f := e.Catalog.MustFaction(l.Faction)
	owed := l.Owed
	paid := e.collectPayment(p, owed, f.Preferred, res)
	tier := classifySettlement(owed, paid, overdue)
	p.Loan = nil

	switch tier {
	case SettleFull:
		p.CreditsCompleted++
		p.adjustRelation(f.ID, loanFullRelation)
		p.Reputation += loanFullRep
		p.logEvent("credit", "Settled the %s loan in full.", f.Name)
		res.note("Loan closed out with %s.", f.Name)
		res.effect(EffectSound("paid"))
	case SettlePartial:
		p.CreditsCompleted++
		penalty := p.Cash / 4
		p.spendCash(penalty)
		p.adjustRelation(f.ID, loanPartialRelation)
		p.logEvent("credit", "Short on the %s loan. They skimmed $%d for the trouble.", f.Name, penalty)
		res.note("Covered $%d of $%d. %s skimmed $%d off you for the insult.", paid, owed, f.Name, penalty)
		res.effect(EffectShake)
	case SettlePoor:
		penalty := p.Cash / 2
		p.spendCash(penalty)
		e.seizeStack(p, res)
		p.damage(e.Rand.IntN(8, 20))
		p.adjustRelation(f.ID, loanPoorRelation)
		p.logEvent("credit", "Defaulted hard on %s. They cleaned you out.", f.Name)
		res.note("$%d against $%d owed. %s took $%d, stock, and a pound of flesh.", paid, owed, f.Name, penalty)
		res.effect(EffectShake)
		res.effect(EffectHaptic(3))
	}
}

// seizeStack confiscates part of one carried commodity stack, largest
// first.
func (e *Engine) seizeStack(p *PlayerState, res *Result) {
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
	taken := best/2 + 1
	if taken > best {
		taken = best
	}
	p.addInventory(target, -taken)
	res.note("They grabbed %d %s on the way out.", taken, e.Catalog.MustCommodity(target).Name)
}
