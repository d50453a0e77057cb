// Faction missions — delivery and supply jobs.
package game

const (
	missionRelationReward = 5
	missionRepReward      = 6
	missionLapsePenalty   = -6
)

// resolveMission completes or expires the active mission during travel.
// Delivery pays out at the destination; supply pays out at the faction's
// home, both only if the goods are actually in hand.
func (e *Engine) resolveMission(p *PlayerState, days int, res *Result) {
	m := p.Mission
	if m == nil {
		return
	}
	f := e.Catalog.MustFaction(m.Faction)

	m.DaysLeft -= days
	target := m.Dest
	if m.Kind == MissionSupply {
		target = f.Home
	}

	if p.Location == target && p.Inventory[m.Commodity] >= m.Quantity {
		cm := e.Catalog.MustCommodity(m.Commodity)
		p.addInventory(m.Commodity, -m.Quantity)
		p.Cash += m.Reward
		p.adjustRelation(f.ID, missionRelationReward)
		p.Reputation += missionRepReward
		p.Mission = nil
		p.logEvent("mission", "Ran %d %s for %s. Paid $%d.", m.Quantity, cm.Name, f.Name, m.Reward)
		res.note("%s's people take the %s off your hands. $%d, no questions.", f.Name, cm.Name, m.Reward)
		res.effect(EffectSound("mission"))
		return
	}

	if m.DaysLeft <= 0 {
		p.adjustRelation(f.ID, missionLapsePenalty)
		p.Mission = nil
		p.logEvent("mission", "Blew the %s job.", f.Name)
		res.note("The window closed on %s's job. They won't forget.", f.Name)
	}
}
