// Pricing — per-commodity market generation for a location.
package game

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/talgya/kingpin/internal/catalog"
)

const (
	// eventVolatility compresses an event's raw multiplier toward 1 before
	// it is applied: spikes are softened and crashes softened symmetrically.
	eventVolatility = 0.8

	// priceMemoryDays is how long recent trades keep nudging regional prices.
	priceMemoryDays = 4
	// priceMemoryNudge is the fractional price shift per remembered trade.
	priceMemoryNudge = 0.08

	// cycleAmplitude bounds the slow market-cycle drift (±6%).
	cycleAmplitude = 0.06
	cyclePeriod    = 18.0
)

// refreshMarket rolls the active event and regenerates prices for the
// player's current location.
func (e *Engine) refreshMarket(p *PlayerState, camp *CampaignState) {
	ev := e.pickEvent(p)
	p.ActiveEvent = ""
	if ev != nil {
		p.ActiveEvent = ev.ID
		p.logEvent("market", "%s", ev.Headline)
	}
	p.Prices = e.GeneratePrices(p, ev, currentLevel(camp))
}

// GeneratePrices builds the price table for the player's location. Absent
// commodities are omitted from the map; an event's target commodity is
// always present. Every returned price is a positive integer.
func (e *Engine) GeneratePrices(p *PlayerState, ev *catalog.MarketEvent, level int) map[catalog.CommodityID]int64 {
	loc := e.Catalog.MustLocation(p.Location)
	region := e.Catalog.MustRegion(loc.Region)
	prices := make(map[catalog.CommodityID]int64, len(e.Catalog.Commodities))
	cycle := e.marketCycle(p.Day, region.ID)

	for i := range e.Catalog.Commodities {
		cm := &e.Catalog.Commodities[i]
		isTarget := ev != nil && ev.Commodity == cm.ID

		absent := cm.SpawnChance * rareScarcity(cm, level)
		if !isTarget && e.Rand.Chance(absent) {
			continue
		}

		var price float64
		if isTarget {
			// Compress the raw multiplier toward 1, then jitter.
			adj := 1 + (ev.Multiplier-1)*eventVolatility
			price = float64(cm.MinPrice) * adj
			price += price * 0.1 * (e.Rand.Float() - 0.5)
		} else {
			price = float64(e.Rand.IntN(int(cm.MinPrice), int(cm.MaxPrice)))
			if m, ok := loc.PriceMult[cm.ID]; ok {
				price *= m
			}
			price *= cycle
			price *= e.memoryNudge(p, cm.ID, region.ID)
		}

		if price < 1 {
			price = 1
		}
		// Round, don't truncate: 0.4 represented as 0.3999… must not shave
		// a unit off the quote.
		prices[cm.ID] = int64(math.Round(price))
	}
	return prices
}

// rareScarcity scales a rare commodity's absence chance up in the early
// campaign so high-ticket goods stay out of reach at level 1.
func rareScarcity(cm *catalog.Commodity, level int) float64 {
	if !cm.Rare {
		return 1
	}
	switch level {
	case 1:
		return 2.5
	case 2:
		return 1.5
	default:
		return 1
	}
}

// marketCycle is a slow deterministic drift field over (day, region): the
// same day in the same region always yields the same multiplier, so fixed
// seeds still reproduce identical runs.
func (e *Engine) marketCycle(day int, region catalog.RegionID) float64 {
	noise := opensimplex.NewNormalized(e.Catalog.CycleSeed)
	x := float64(day) / cyclePeriod
	y := float64(regionOrdinal(e.Catalog, region))
	// Normalized noise is in [0,1]; recenter to ±amplitude.
	return 1 + cycleAmplitude*(2*noise.Eval2(x, y)-1)
}

func regionOrdinal(c *catalog.Catalog, id catalog.RegionID) int {
	for i := range c.Regions {
		if c.Regions[i].ID == id {
			return i
		}
	}
	return 0
}

// memoryNudge applies short-term price memory: goods the player recently
// bought in volume in this region run hotter, recently dumped goods cheaper.
func (e *Engine) memoryNudge(p *PlayerState, cm catalog.CommodityID, region catalog.RegionID) float64 {
	mult := 1.0
	for _, tm := range p.RecentTrades {
		if tm.Commodity != cm || tm.Region != region {
			continue
		}
		if p.Day-tm.Day > priceMemoryDays {
			continue
		}
		if tm.Bought {
			mult *= 1 + priceMemoryNudge
		} else {
			mult *= 1 - priceMemoryNudge
		}
	}
	return mult
}

// rememberTrade records a volume trade for the price-memory window and
// drops expired entries.
func (p *PlayerState) rememberTrade(cm catalog.CommodityID, region catalog.RegionID, bought bool) {
	kept := p.RecentTrades[:0]
	for _, tm := range p.RecentTrades {
		if p.Day-tm.Day <= priceMemoryDays {
			kept = append(kept, tm)
		}
	}
	p.RecentTrades = append(kept, TradeMemory{
		Commodity: cm,
		Region:    region,
		Bought:    bought,
		Day:       p.Day,
	})
}
