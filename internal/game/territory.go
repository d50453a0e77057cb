// Territory — tribute income, stash storage, and low-relation extortion.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

const (
	// extortionThreshold: turf factions this sour shake the player down
	// on arrival.
	extortionThreshold = -20
	extortionPct       = 0.10
)

// creditTribute pays daily income from every owned territory, scaled by
// the local economy (territory value × tribute rate × days traveled).
func (e *Engine) creditTribute(p *PlayerState, days int, res *Result) {
	var total int64
	for id, t := range p.Territory {
		loc := e.Catalog.MustLocation(id)
		total += int64(float64(loc.TerritoryCost) * t.TributeRate * float64(days))
	}
	if total > 0 {
		p.Cash += total
		res.note("Tribute came in: $%d.", total)
	}
}

// applyExtortion shakes the player down on arrival at turf whose faction
// truly hates them. Below the trading block but above open war.
func (e *Engine) applyExtortion(p *PlayerState, res *Result) {
	loc := e.Catalog.MustLocation(p.Location)
	if loc.Turf == "" || p.Relation(loc.Turf) > extortionThreshold {
		return
	}
	if p.Cash <= 0 {
		return
	}
	f := e.Catalog.MustFaction(loc.Turf)
	taken := int64(float64(p.Cash) * extortionPct)
	if taken < 1 {
		taken = 1
	}
	p.spendCash(taken)
	p.logEvent("territory", "%s taxed you $%d for walking their streets.", f.Name, taken)
	res.note("%s's people stop you at the corner. Walking tax: $%d.", f.Name, taken)
}

// StashDeposit moves goods from hand into the local territory's stash.
func (e *Engine) StashDeposit(p *PlayerState, id catalog.CommodityID, qty int) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	t, ok := p.Territory[p.Location]
	if !ok {
		res.note("You don't hold this block.")
		return res
	}
	cm := e.Catalog.MustCommodity(id)
	if qty <= 0 || qty > p.Inventory[id] {
		res.note("You're carrying %d %s.", p.Inventory[id], cm.Name)
		return res
	}
	stashed := 0
	for _, q := range t.Stash {
		stashed += q
	}
	if stashed+qty > StashCap {
		res.note("The stash only has room for %d more.", StashCap-stashed)
		return res
	}

	p.addInventory(id, -qty)
	t.Stash[id] += qty
	res.note("Stashed %d %s.", qty, cm.Name)
	return res
}

// StashWithdraw moves goods from the local stash back into hand, capacity
// permitting.
func (e *Engine) StashWithdraw(p *PlayerState, id catalog.CommodityID, qty int) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	t, ok := p.Territory[p.Location]
	if !ok {
		res.note("You don't hold this block.")
		return res
	}
	cm := e.Catalog.MustCommodity(id)
	if qty <= 0 || qty > t.Stash[id] {
		res.note("The stash holds %d %s.", t.Stash[id], cm.Name)
		return res
	}
	if p.CarriedTotal()+qty > p.Capacity() {
		res.note("No room: %d slots free.", p.Capacity()-p.CarriedTotal())
		return res
	}

	t.Stash[id] -= qty
	if t.Stash[id] == 0 {
		delete(t.Stash, id)
	}
	// Stash goods re-enter at zero recorded cost: profit on sale runs hot.
	held := p.Inventory[id]
	p.AvgCost[id] = p.AvgCost[id] * float64(held) / float64(held+qty)
	p.Inventory[id] = held + qty
	res.note("Picked up %d %s from the stash.", qty, cm.Name)
	return res
}
