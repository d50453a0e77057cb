// Package catalog provides the static reference data the engine runs on:
// commodities, regions, locations, factions, market events, personas, and
// rank thresholds. The catalog is loaded once and never mutated; every
// engine operation takes it as an explicit dependency so tests can run on
// minimal hand-built catalogs.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Typed identifiers. All cross-references inside the catalog use these, and
// a loaded catalog is validated so a dangling reference fails at load time
// rather than mid-game.
type (
	CommodityID string
	RegionID    string
	LocationID  string
	FactionID   string
	EventID     string
)

// LawStyle describes how a region's law enforcement operates. It tunes
// encounter odds: corrupt cops are easier to outrun and bribe, methodical
// ones harder.
type LawStyle string

const (
	LawCorrupt    LawStyle = "corrupt"
	LawMethodical LawStyle = "methodical"
	LawStandard   LawStyle = "standard"
)

// Commodity is one tradeable good. SpawnChance is the probability the good
// is simply absent from a market on a given day; Rare goods are scarcer
// still in the early game.
type Commodity struct {
	ID          CommodityID `yaml:"id"`
	Name        string      `yaml:"name"`
	MinPrice    int64       `yaml:"min_price"`
	MaxPrice    int64       `yaml:"max_price"`
	SpawnChance float64     `yaml:"spawn_chance"`
	Rare        bool        `yaml:"rare"`
	Contraband  bool        `yaml:"contraband"`
}

// Region groups locations under one law-enforcement profile and one customs
// regime. MinReputation and MinLevel gate entry; Arrival is where a player
// lands when entering the region from outside.
type Region struct {
	ID            RegionID   `yaml:"id"`
	Name          string     `yaml:"name"`
	Law           LawStyle   `yaml:"law"`
	LawRisk       float64    `yaml:"law_risk"`       // additive encounter probability
	Strictness    float64    `yaml:"strictness"`     // customs detection base
	HeatDecay     float64    `yaml:"heat_decay"`     // bonus heat decay per travel
	MinReputation int        `yaml:"min_reputation"` // entry lock
	MinLevel      int        `yaml:"min_level"`      // campaign gating (0 = always open)
	Arrival       LocationID `yaml:"arrival"`
}

// Location is a market the player can stand in. PriceMult skews individual
// commodity prices; BuyDiscount and SellBonus are flat percentage edges.
// Turf marks the location as a faction's home ground, which enables
// territory purchase offers and hostile-faction trade blocks.
type Location struct {
	ID            LocationID              `yaml:"id"`
	Name          string                  `yaml:"name"`
	Region        RegionID                `yaml:"region"`
	HeatMod       int                     `yaml:"heat_mod"`
	BuyDiscount   float64                 `yaml:"buy_discount"`
	SellBonus     float64                 `yaml:"sell_bonus"`
	Turf          FactionID               `yaml:"turf,omitempty"`
	TerritoryCost int64                   `yaml:"territory_cost"`
	TributeRate   float64                 `yaml:"tribute_rate"`
	PriceMult     map[CommodityID]float64 `yaml:"price_mult,omitempty"`
}

// Faction is a criminal organization: creditor, mission giver, and war
// opponent. ConsignRate and LoanRate are per-day interest; CreditBase is
// the borrowing cap before relation scaling.
type Faction struct {
	ID         FactionID   `yaml:"id"`
	Name       string      `yaml:"name"`
	Home       LocationID  `yaml:"home"`
	Preferred  CommodityID `yaml:"preferred"` // consignments front this good
	ConsignRate float64    `yaml:"consign_rate"`
	LoanRate   float64     `yaml:"loan_rate"`
	CreditBase int64       `yaml:"credit_base"`
	WarStrength int        `yaml:"war_strength"` // soldiers fielded in open war
}

// MarketEvent spikes or crashes one commodity. Multiplier > 1 is a spike,
// < 1 a crash. Region scopes the event; empty means it can fire anywhere.
type MarketEvent struct {
	ID         EventID     `yaml:"id"`
	Headline   string      `yaml:"headline"`
	Commodity  CommodityID `yaml:"commodity"`
	Multiplier float64     `yaml:"multiplier"`
	Region     RegionID    `yaml:"region,omitempty"`
}

// Spike reports whether the event pushes the price up.
func (e MarketEvent) Spike() bool { return e.Multiplier > 1 }

// Persona is a starting modifier preset chosen at game creation.
type Persona struct {
	ID             string
	Name           string
	BuyHeatMult    float64 // scales heat gained from buying
	EncounterMod   float64 // additive encounter probability (negative = safer)
	HeatDecayBonus int     // extra heat shed per travel
	CapacityBonus  int     // extra carrying capacity
	FareMult       float64 // scales travel fares
}

// Rank maps a reputation floor to a street title.
type Rank struct {
	MinReputation int
	Title         string
}

// Catalog is the full static data set, with lookup indexes built at load.
type Catalog struct {
	Commodities []Commodity   `yaml:"commodities"`
	Regions     []Region      `yaml:"regions"`
	Locations   []Location    `yaml:"locations"`
	Factions    []Faction     `yaml:"factions"`
	Events      []MarketEvent `yaml:"events"`

	// CycleSeed feeds the deterministic market-cycle noise field.
	CycleSeed int64 `yaml:"cycle_seed"`

	commodityIdx map[CommodityID]*Commodity
	regionIdx    map[RegionID]*Region
	locationIdx  map[LocationID]*Location
	factionIdx   map[FactionID]*Faction
	eventIdx     map[EventID]*MarketEvent
}

//go:embed data.yaml
var embeddedData []byte

// Load parses and validates the embedded catalog data.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(embeddedData, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.buildIndexes(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return &c, nil
}

// MustLoad is Load for callers that cannot proceed without a catalog
// (commands, tests). Embedded data failing to parse is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from in-memory data, for tests running on minimal
// hand-built sets.
func New(c Catalog) (*Catalog, error) {
	if err := c.buildIndexes(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) buildIndexes() error {
	c.commodityIdx = make(map[CommodityID]*Commodity, len(c.Commodities))
	for i := range c.Commodities {
		cm := &c.Commodities[i]
		if cm.MinPrice <= 0 || cm.MaxPrice < cm.MinPrice {
			return fmt.Errorf("commodity %q: bad price range [%d,%d]", cm.ID, cm.MinPrice, cm.MaxPrice)
		}
		c.commodityIdx[cm.ID] = cm
	}

	c.regionIdx = make(map[RegionID]*Region, len(c.Regions))
	for i := range c.Regions {
		c.regionIdx[c.Regions[i].ID] = &c.Regions[i]
	}

	c.locationIdx = make(map[LocationID]*Location, len(c.Locations))
	for i := range c.Locations {
		loc := &c.Locations[i]
		if _, ok := c.regionIdx[loc.Region]; !ok {
			return fmt.Errorf("location %q: unknown region %q", loc.ID, loc.Region)
		}
		for cid := range loc.PriceMult {
			if _, ok := c.commodityIdx[cid]; !ok {
				return fmt.Errorf("location %q: price mult for unknown commodity %q", loc.ID, cid)
			}
		}
		c.locationIdx[loc.ID] = loc
	}

	// Arrival points must exist and sit inside their own region.
	for i := range c.Regions {
		r := &c.Regions[i]
		arr, ok := c.locationIdx[r.Arrival]
		if !ok {
			return fmt.Errorf("region %q: unknown arrival location %q", r.ID, r.Arrival)
		}
		if arr.Region != r.ID {
			return fmt.Errorf("region %q: arrival %q belongs to region %q", r.ID, r.Arrival, arr.Region)
		}
	}

	c.factionIdx = make(map[FactionID]*Faction, len(c.Factions))
	for i := range c.Factions {
		f := &c.Factions[i]
		if _, ok := c.locationIdx[f.Home]; !ok {
			return fmt.Errorf("faction %q: unknown home location %q", f.ID, f.Home)
		}
		if _, ok := c.commodityIdx[f.Preferred]; !ok {
			return fmt.Errorf("faction %q: unknown preferred commodity %q", f.ID, f.Preferred)
		}
		c.factionIdx[f.ID] = f
	}

	for i := range c.Locations {
		loc := &c.Locations[i]
		if loc.Turf != "" {
			if _, ok := c.factionIdx[loc.Turf]; !ok {
				return fmt.Errorf("location %q: unknown turf faction %q", loc.ID, loc.Turf)
			}
		}
	}

	c.eventIdx = make(map[EventID]*MarketEvent, len(c.Events))
	for i := range c.Events {
		ev := &c.Events[i]
		if _, ok := c.commodityIdx[ev.Commodity]; !ok {
			return fmt.Errorf("event %q: unknown commodity %q", ev.ID, ev.Commodity)
		}
		if ev.Region != "" {
			if _, ok := c.regionIdx[ev.Region]; !ok {
				return fmt.Errorf("event %q: unknown region %q", ev.ID, ev.Region)
			}
		}
		if ev.Multiplier <= 0 {
			return fmt.Errorf("event %q: multiplier must be positive", ev.ID)
		}
		c.eventIdx[ev.ID] = ev
	}

	return nil
}

// Commodity looks up a commodity by ID.
func (c *Catalog) Commodity(id CommodityID) (*Commodity, bool) {
	cm, ok := c.commodityIdx[id]
	return cm, ok
}

// MustCommodity is Commodity for engine paths where a miss means corrupt
// state or catalog: it fails loudly instead of absorbing the bug.
func (c *Catalog) MustCommodity(id CommodityID) *Commodity {
	cm, ok := c.commodityIdx[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown commodity %q", id))
	}
	return cm
}

// Location looks up a location by ID.
func (c *Catalog) Location(id LocationID) (*Location, bool) {
	l, ok := c.locationIdx[id]
	return l, ok
}

// MustLocation panics on a miss; see MustCommodity.
func (c *Catalog) MustLocation(id LocationID) *Location {
	l, ok := c.locationIdx[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown location %q", id))
	}
	return l
}

// Region looks up a region by ID.
func (c *Catalog) Region(id RegionID) (*Region, bool) {
	r, ok := c.regionIdx[id]
	return r, ok
}

// MustRegion panics on a miss; see MustCommodity.
func (c *Catalog) MustRegion(id RegionID) *Region {
	r, ok := c.regionIdx[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown region %q", id))
	}
	return r
}

// RegionOf returns the region a location belongs to.
func (c *Catalog) RegionOf(loc LocationID) *Region {
	return c.MustRegion(c.MustLocation(loc).Region)
}

// Faction looks up a faction by ID.
func (c *Catalog) Faction(id FactionID) (*Faction, bool) {
	f, ok := c.factionIdx[id]
	return f, ok
}

// MustFaction panics on a miss; see MustCommodity.
func (c *Catalog) MustFaction(id FactionID) *Faction {
	f, ok := c.factionIdx[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown faction %q", id))
	}
	return f
}

// Event looks up a market event by ID.
func (c *Catalog) Event(id EventID) (*MarketEvent, bool) {
	e, ok := c.eventIdx[id]
	return e, ok
}

// EventsFor returns the events eligible to fire in a region: region-scoped
// matches plus unscoped events.
func (c *Catalog) EventsFor(region RegionID) []*MarketEvent {
	var out []*MarketEvent
	for i := range c.Events {
		ev := &c.Events[i]
		if ev.Region == "" || ev.Region == region {
			out = append(out, ev)
		}
	}
	return out
}
