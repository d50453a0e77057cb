// Scripted decision policies for the harness.
package balance

import (
	"github.com/talgya/kingpin/internal/catalog"
	"github.com/talgya/kingpin/internal/game"
)

// Trader is the baseline policy: buy whatever is cheapest relative to its
// base range, sell anything held at a markup, keep moving, service debt
// first when flush.
type Trader struct {
	// route index; the policy walks the catalog's locations in order.
	next int
}

func (t *Trader) Name() string { return "trader" }

func (t *Trader) Encounter(p *game.PlayerState) game.EncounterChoice {
	// Pay when rich, run when poor, fight only as a last resort.
	if p.Cash > 5000 {
		return game.ChoiceBribe
	}
	if p.Health > 50 && p.Armed {
		return game.ChoiceFight
	}
	return game.ChoiceRun
}

func (t *Trader) TakeTurn(e *game.Engine, p *game.PlayerState, camp *game.CampaignState) game.Result {
	cat := e.Catalog

	// Clear the table first: offers distract.
	if p.Offer != nil {
		switch p.Offer.Kind {
		case game.OfferEquipment, game.OfferConsignment:
			return e.AcceptOffer(p, camp)
		default:
			return e.DeclineOffer(p)
		}
	}

	// Service the shark when comfortably able.
	if p.Debt > 0 && p.Cash > p.Debt+2000 {
		return e.PayDebt(p, p.Debt)
	}
	// Clear credit instruments before they come due.
	if c := p.Consignment; c != nil && p.Cash >= c.Owed && c.DaysLeft <= 2 {
		return e.PayConsignment(p, c.Owed)
	}
	if l := p.Loan; l != nil && p.Cash >= l.Owed && l.DaysLeft <= 2 {
		return e.PayLoan(p, l.Owed)
	}

	// Sell any position quoting above cost. Scan in catalog order so the
	// same seed always picks the same position.
	for i := range cat.Commodities {
		id := cat.Commodities[i].ID
		qty := p.Inventory[id]
		price, ok := p.Prices[id]
		if !ok || qty == 0 {
			continue
		}
		if float64(price) > p.AvgCost[id]*1.15 {
			return e.Sell(p, id, qty)
		}
	}

	// Buy the best value on the board: lowest price relative to base range.
	if free := p.Capacity() - p.CarriedTotal(); free > 0 && p.Cash > 500 {
		bestID, bestRatio := catalog.CommodityID(""), 1.0
		for i := range cat.Commodities {
			cm := &cat.Commodities[i]
			price, ok := p.Prices[cm.ID]
			if !ok {
				continue
			}
			ratio := float64(price) / float64(cm.MinPrice+cm.MaxPrice) * 2
			if ratio < bestRatio {
				bestID, bestRatio = cm.ID, ratio
			}
		}
		if bestID != "" && bestRatio < 0.8 {
			price := p.Prices[bestID]
			qty := int(p.Cash * 8 / 10 / price)
			if qty > free {
				qty = free
			}
			if qty > 0 {
				return e.Buy(p, bestID, qty)
			}
		}
	}

	// Nothing to do here: move along the route.
	return t.travelNext(e, p, camp)
}

func (t *Trader) travelNext(e *game.Engine, p *game.PlayerState, camp *game.CampaignState) game.Result {
	locs := e.Catalog.Locations
	for tries := 0; tries < len(locs); tries++ {
		dest := locs[t.next%len(locs)].ID
		t.next++
		if dest == p.Location {
			continue
		}
		// A rejected travel leaves the day untouched; try the next stop.
		before := p.Day
		res := e.Travel(p, camp, dest)
		if p.Day != before || res.Phase != game.PhasePlaying {
			return res
		}
	}
	// Every road refused, which almost always means the fare. Raise cash:
	// dump stock at whatever it quotes, then drain the bank, then the shark.
	for i := range e.Catalog.Commodities {
		id := e.Catalog.Commodities[i].ID
		if qty := p.Inventory[id]; qty > 0 {
			if _, ok := p.Prices[id]; ok {
				return e.Sell(p, id, qty)
			}
		}
	}
	if p.Bank > 0 {
		return e.Withdraw(p, p.Bank)
	}
	// If even the shark says no, the harness's stall guard ends the run.
	return e.Borrow(p, 1500)
}

// Coward is a control policy: never trades, just travels and banks. Its
// survival rate isolates the hazard pressure of the world from trading
// risk.
type Coward struct {
	next int
}

func (c *Coward) Name() string { return "coward" }

func (c *Coward) Encounter(p *game.PlayerState) game.EncounterChoice {
	return game.ChoiceRun
}

func (c *Coward) TakeTurn(e *game.Engine, p *game.PlayerState, camp *game.CampaignState) game.Result {
	if p.Offer != nil {
		return e.DeclineOffer(p)
	}
	if p.Cash > 1000 {
		return e.Deposit(p, p.Cash-500)
	}
	if p.Cash < 400 && p.Bank > 0 {
		amount := int64(1000)
		if amount > p.Bank {
			amount = p.Bank
		}
		return e.Withdraw(p, amount)
	}
	locs := e.Catalog.Locations
	dest := locs[c.next%len(locs)].ID
	c.next++
	if dest == p.Location {
		dest = locs[c.next%len(locs)].ID
		c.next++
	}
	return e.Travel(p, camp, dest)
}
