// Milestone tracker — one-time achievement predicates re-evaluated after
// every mutation.
package game

// milestone pairs an ID with its predicate. Predicates read state only;
// recording happens in checkMilestones.
type milestone struct {
	ID    string
	Title string
	Check func(*PlayerState) bool
}

var milestones = []milestone{
	{"first_trade", "First Blood", func(p *PlayerState) bool { return p.Stats.Trades >= 1 }},
	{"ten_grand", "Walking Money", func(p *PlayerState) bool { return p.NetWorth() >= 10_000 }},
	{"hundred_grand", "Serious People", func(p *PlayerState) bool { return p.NetWorth() >= 100_000 }},
	{"half_million", "The Long Money", func(p *PlayerState) bool { return p.NetWorth() >= 500_000 }},
	{"streak_five", "Hot Hand", func(p *PlayerState) bool { return p.Stats.Streak >= 5 }},
	{"debt_free", "Nobody's Man", func(p *PlayerState) bool { return p.Debt == 0 && p.Day > 1 }},
	{"armed", "Heavy Coat", func(p *PlayerState) bool { return p.Armed }},
	{"landlord", "Rent Day", func(p *PlayerState) bool { return len(p.Territory) >= 1 }},
	{"clean_credit", "Good For It", func(p *PlayerState) bool { return p.CreditsCompleted >= 3 }},
	{"captain", "Made Captain", func(p *PlayerState) bool { return p.Reputation >= 40 }},
	{"kingpin", "Kingpin", func(p *PlayerState) bool { return p.Reputation >= 200 }},
}

// checkMilestones records every newly satisfied predicate but surfaces
// only the newest one — earlier catches stay silently recorded.
func (e *Engine) checkMilestones(p *PlayerState, res *Result) {
	var newest *milestone
	for i := range milestones {
		m := &milestones[i]
		if p.Milestones[m.ID] {
			continue
		}
		if m.Check(p) {
			p.Milestones[m.ID] = true
			newest = m
		}
	}
	if newest != nil {
		p.logEvent("milestone", "Milestone: %s.", newest.Title)
		res.note("Milestone — %s.", newest.Title)
		res.effect(EffectSound("milestone"))
	}
}
