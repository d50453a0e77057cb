// Trade executor — buy and sell against the current market.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

const (
	// hostileTurfThreshold blocks all trading on a faction's turf below it.
	hostileTurfThreshold = -10
	// bloodAllyThreshold grants the sale bonus on a faction's turf at or
	// above it.
	bloodAllyThreshold = 30
	bloodAllyBonus     = 0.06

	// fingerSalePenalty is the yield lost per missing finger.
	fingerSalePenalty = 0.03

	// volumeTradeQty is the quantity that registers in price memory.
	volumeTradeQty = 5

	buyHeatDivisor  = 15_000
	buyHeatCap      = 15
	sellHeatDivisor = 20_000
	sellHeatCap     = 12
)

// Buy purchases qty units at the current local price. Rejected outright —
// state untouched — when the market, cash, or capacity can't cover it.
func (e *Engine) Buy(p *PlayerState, id catalog.CommodityID, qty int) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if blocked, faction := e.turfHostile(p); blocked {
		res.note("%s run this turf and they don't deal with you. Nobody trades here until you square things.", faction.Name)
		return res
	}
	cm := e.Catalog.MustCommodity(id)
	if qty <= 0 {
		res.note("That's not a quantity.")
		return res
	}
	price, ok := p.Prices[id]
	if !ok {
		res.note("No %s on the market today.", cm.Name)
		return res
	}

	loc := e.Catalog.MustLocation(p.Location)
	unit := int64(float64(price) * (1 - loc.BuyDiscount))
	if unit < 1 {
		unit = 1
	}
	cost := unit * int64(qty)

	if cost > p.Cash {
		res.note("You need $%d for %d %s and you're holding $%d.", cost, qty, cm.Name, p.Cash)
		return res
	}
	if p.CarriedTotal()+qty > p.Capacity() {
		res.note("No room: %d slots free, %d needed.", p.Capacity()-p.CarriedTotal(), qty)
		return res
	}

	// Weighted-average cost basis across the merged position.
	held := p.Inventory[id]
	p.AvgCost[id] = (p.AvgCost[id]*float64(held) + float64(cost)) / float64(held+qty)
	p.Inventory[id] = held + qty
	p.Cash -= cost

	persona := catalog.PersonaByID(p.Persona)
	heat := int(float64(cost) / buyHeatDivisor * persona.BuyHeatMult)
	if heat > buyHeatCap {
		heat = buyHeatCap
	}
	p.addHeat(heat)

	if qty >= volumeTradeQty {
		p.rememberTrade(id, loc.Region, true)
	}

	p.logEvent("trade", "Bought %d %s at $%d.", qty, cm.Name, unit)
	res.note("Bought %d %s for $%d.", qty, cm.Name, cost)
	res.effect(EffectSound("buy"))
	e.checkMilestones(p, &res)
	return res
}

// Sell moves qty units at the current local price. Yield drops with missing
// fingers and rises with location and blood-ally bonuses. Profitable sales
// extend the streak; anything else resets it.
func (e *Engine) Sell(p *PlayerState, id catalog.CommodityID, qty int) Result {
	var res Result
	res.Phase = PhasePlaying
	if p.busy(&res) {
		return res
	}
	if blocked, faction := e.turfHostile(p); blocked {
		res.note("%s run this turf and they don't deal with you. Nobody trades here until you square things.", faction.Name)
		return res
	}
	cm := e.Catalog.MustCommodity(id)
	held := p.Inventory[id]
	if qty <= 0 || qty > held {
		res.note("You're carrying %d %s.", held, cm.Name)
		return res
	}
	price, ok := p.Prices[id]
	if !ok {
		res.note("Nobody's buying %s here today.", cm.Name)
		return res
	}

	loc := e.Catalog.MustLocation(p.Location)
	yield := float64(price)
	yield *= 1 - float64(MaxFingers-p.Fingers)*fingerSalePenalty
	yield *= 1 + loc.SellBonus
	if loc.Turf != "" && p.Relation(loc.Turf) >= bloodAllyThreshold {
		yield *= 1 + bloodAllyBonus
	}
	unit := int64(yield)
	if unit < 1 {
		unit = 1
	}
	revenue := unit * int64(qty)
	profit := revenue - int64(p.AvgCost[id]*float64(qty))

	p.Cash += revenue
	p.addInventory(id, -qty)

	p.Stats.Trades++
	p.Stats.Profit += profit
	if profit > p.Stats.BestTrade {
		p.Stats.BestTrade = profit
	}
	if profit > 0 {
		p.Stats.Streak++
		// The streak compounds reputation and warms the local faction.
		p.Reputation += 1 + p.Stats.Streak/3
		if loc.Turf != "" {
			p.adjustRelation(loc.Turf, 1)
		}
	} else {
		p.Stats.Streak = 0
	}

	heat := int(revenue / sellHeatDivisor)
	if heat > sellHeatCap {
		heat = sellHeatCap
	}
	p.addHeat(heat)

	if qty >= volumeTradeQty {
		p.rememberTrade(id, loc.Region, false)
	}

	p.logEvent("trade", "Sold %d %s at $%d (profit $%d).", qty, cm.Name, unit, profit)
	if profit > 0 {
		res.note("Sold %d %s for $%d — $%d clear.", qty, cm.Name, revenue, profit)
		res.effect(EffectSound("sell"))
	} else {
		res.note("Sold %d %s for $%d. Took a loss of $%d.", qty, cm.Name, revenue, -profit)
	}
	e.checkMilestones(p, &res)
	return res
}

// turfHostile reports a trading block at the current location's turf.
func (e *Engine) turfHostile(p *PlayerState) (bool, *catalog.Faction) {
	loc := e.Catalog.MustLocation(p.Location)
	if loc.Turf == "" {
		return false, nil
	}
	if p.Relation(loc.Turf) < hostileTurfThreshold {
		return true, e.Catalog.MustFaction(loc.Turf)
	}
	return false, nil
}
