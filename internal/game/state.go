// Package game is the turn-resolution engine: pure state-transition logic
// over PlayerState and CampaignState. Operations take the current state and
// a player-chosen action and produce the next state, a set of declarative
// side-effect descriptors, user-facing notifications, and a phase tag. The
// engine performs no I/O; the caller renders effects and persists state.
package game

import (
	"fmt"

	"github.com/talgya/kingpin/internal/catalog"
	"github.com/talgya/kingpin/internal/entropy"
)

// Phase tags the continuation state returned by every operation. Callers
// drive a visible state machine off these instead of inferring control flow
// from field presence.
type Phase string

const (
	PhasePlaying       Phase = "playing"
	PhaseCopEncounter  Phase = "cop_encounter"
	PhaseLevelComplete Phase = "level_complete"
	PhaseEnd           Phase = "end"
	PhaseWin           Phase = "win"
)

// Effect is an abstract side-effect descriptor. The engine never performs
// I/O itself; the presentation layer renders these.
type Effect string

const EffectShake Effect = "shake"

// EffectSound requests a sound cue by ID.
func EffectSound(id string) Effect { return Effect("play-sound:" + id) }

// EffectHaptic requests haptic feedback at the given intensity (1–3).
func EffectHaptic(intensity int) Effect {
	return Effect(fmt.Sprintf("haptic:%d", intensity))
}

// Result is what every engine operation returns alongside the mutated
// state: the phase to continue in, notifications for the player, and
// effects for the renderer.
type Result struct {
	Phase   Phase
	Notes   []string
	Effects []Effect
}

func (r *Result) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

func (r *Result) effect(e Effect) {
	r.Effects = append(r.Effects, e)
}

// Engine binds the static catalog and the random source. All gameplay
// operations hang off it; both dependencies are injected so the balance
// harness can substitute a minimal catalog and a seeded source.
type Engine struct {
	Catalog *catalog.Catalog
	Rand    entropy.Source
}

// New creates an engine over a catalog and a random source.
func New(c *catalog.Catalog, src entropy.Source) *Engine {
	return &Engine{Catalog: c, Rand: src}
}

// Gameplay bounds enforced after every mutation.
const (
	MaxHeat    = 100
	MaxHealth  = 130
	MaxFingers = 10

	MinRelation = -30
	MaxRelation = 40

	// StashCap bounds goods parked in any one owned territory.
	StashCap = 40

	// capacityPerFinger is carrying capacity lost per missing finger.
	capacityPerFinger = 4

	eventLogCap = 200
)

// TradeStats accumulates lifetime trading performance.
type TradeStats struct {
	Profit    int64 `json:"profit"`
	BestTrade int64 `json:"best_trade"`
	Trades    int   `json:"trades"`
	Streak    int   `json:"streak"`
}

// Territory is an owned location: daily tribute plus a bounded stash.
type Territory struct {
	TributeRate float64                     `json:"tribute_rate"`
	Stash       map[catalog.CommodityID]int `json:"stash"`
}

// InformantStatus tracks the lifecycle of the player's informant slot.
type InformantStatus uint8

const (
	InformantUnhired InformantStatus = iota
	InformantHired
	InformantDead
)

// Informant is a hired tipster. Skill (1–3) drives tip accuracy; Loyalty
// drifts down over time and bottoming out risks betrayal.
type Informant struct {
	Name    string          `json:"name"`
	Skill   int             `json:"skill"`
	Loyalty int             `json:"loyalty"`
	Status  InformantStatus `json:"status"`
	Tip     *Tip            `json:"tip,omitempty"`
}

// Tip is a forecast: "commodity X will spike/crash in N days". Accurate
// tips reference a real catalog event; inaccurate ones are noise. The
// player cannot tell which except statistically.
type Tip struct {
	Commodity catalog.CommodityID `json:"commodity"`
	Spike     bool                `json:"spike"`
	Accurate  bool                `json:"accurate"`
	Countdown int                 `json:"countdown"`
	EventID   catalog.EventID     `json:"event_id,omitempty"`
}

// OfferKind discriminates the pending-offer union.
type OfferKind uint8

const (
	OfferConsignment OfferKind = iota
	OfferMission
	OfferEquipment
	OfferInformant
	OfferTerritory
)

// Offer is the single pending proposition. Which fields are meaningful
// depends on Kind; accept/decline switch on it exhaustively.
type Offer struct {
	Kind OfferKind `json:"kind"`

	// Consignment, mission, and loan-adjacent offers.
	Faction   catalog.FactionID   `json:"faction,omitempty"`
	Commodity catalog.CommodityID `json:"commodity,omitempty"`
	Quantity  int                 `json:"quantity,omitempty"`
	Amount    int64               `json:"amount,omitempty"`
	Term      int                 `json:"term,omitempty"`

	// Mission destination.
	Dest catalog.LocationID `json:"dest,omitempty"`

	// Informant candidate.
	Candidate *Informant `json:"candidate,omitempty"`

	// Territory on sale.
	Location catalog.LocationID `json:"location,omitempty"`

	Text string `json:"text"`
}

// EncounterKind discriminates the active-encounter union.
type EncounterKind uint8

const (
	EncounterLaw EncounterKind = iota
	EncounterHunter
	EncounterCollector
	EncounterWar
)

// Encounter is a multi-round standoff. Count and Strength shrink as rounds
// resolve; the slot clears only on a terminal outcome.
type Encounter struct {
	Kind     EncounterKind     `json:"kind"`
	Count    int               `json:"count"`
	Strength int               `json:"strength"`
	Faction  catalog.FactionID `json:"faction,omitempty"`
	Round    int               `json:"round"`
}

// Consignment is a commodity-backed faction loan: goods fronted now, cash
// or goods due within the term. OverdueTurns counts travels past due.
type Consignment struct {
	Faction      catalog.FactionID   `json:"faction"`
	Commodity    catalog.CommodityID `json:"commodity"`
	Quantity     int                 `json:"quantity"`
	Owed         int64               `json:"owed"`
	DaysLeft     int                 `json:"days_left"`
	OverdueTurns int                 `json:"overdue_turns"`
}

// FactionLoan is a cash loan with compounding daily interest and a harsher
// settlement curve than consignment.
type FactionLoan struct {
	Faction      catalog.FactionID `json:"faction"`
	Principal    int64             `json:"principal"`
	Owed         int64             `json:"owed"`
	DaysLeft     int               `json:"days_left"`
	OverdueTurns int               `json:"overdue_turns"`
}

// MissionKind discriminates faction missions.
type MissionKind uint8

const (
	MissionDelivery MissionKind = iota // carry goods to a destination
	MissionSupply                      // source goods and hand them over
)

// Mission is an accepted faction job.
type Mission struct {
	Kind      MissionKind         `json:"kind"`
	Faction   catalog.FactionID   `json:"faction"`
	Commodity catalog.CommodityID `json:"commodity"`
	Quantity  int                 `json:"quantity"`
	Dest      catalog.LocationID  `json:"dest"`
	Reward    int64               `json:"reward"`
	DaysLeft  int                 `json:"days_left"`
}

// TradeMemory is the short-term price memory window: volume recently moved
// in a region nudges subsequent prices there.
type TradeMemory struct {
	Commodity catalog.CommodityID `json:"commodity"`
	Region    catalog.RegionID    `json:"region"`
	Bought    bool                `json:"bought"`
	Day       int                 `json:"day"`
}

// LogEntry is one line of the bounded in-game event log.
type LogEntry struct {
	Day      int    `json:"day"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// PlayerState is the complete per-player simulation state. It is owned by
// the engine and mutated only through engine operations.
type PlayerState struct {
	Location catalog.LocationID `json:"location"`
	Day      int                `json:"day"`
	DayLimit int                `json:"day_limit"`

	Cash int64 `json:"cash"`
	Bank int64 `json:"bank"`
	Debt int64 `json:"debt"`

	Inventory map[catalog.CommodityID]int     `json:"inventory"`
	AvgCost   map[catalog.CommodityID]float64 `json:"avg_cost"`

	BaseCapacity int    `json:"base_capacity"`
	Fingers      int    `json:"fingers"`
	Armed        bool   `json:"armed"`
	Health       int    `json:"health"`
	Heat         int    `json:"heat"`
	Reputation   int    `json:"reputation"`
	Persona      string `json:"persona"`

	Stats     TradeStats                         `json:"stats"`
	Relations map[catalog.FactionID]int          `json:"relations"`
	Territory map[catalog.LocationID]*Territory  `json:"territory"`
	Informant *Informant                         `json:"informant,omitempty"`

	Offer       *Offer       `json:"offer,omitempty"`
	Encounter   *Encounter   `json:"encounter,omitempty"`
	Consignment *Consignment `json:"consignment,omitempty"`
	Loan        *FactionLoan `json:"loan,omitempty"`
	Mission     *Mission     `json:"mission,omitempty"`

	// CreditsCompleted counts instruments fully settled, ever.
	CreditsCompleted int `json:"credits_completed"`

	Milestones   map[string]bool `json:"milestones"`
	RecentTrades []TradeMemory   `json:"recent_trades"`

	// Market at the current location. A commodity absent from Prices is
	// unavailable today.
	Prices      map[catalog.CommodityID]int64 `json:"prices"`
	ActiveEvent catalog.EventID               `json:"active_event,omitempty"`

	Log []LogEntry `json:"log"`
}

// FactionWar is the campaign's single active war.
type FactionWar struct {
	Faction  catalog.FactionID `json:"faction"`
	Strength float64           `json:"strength"` // 0–100, enemy force remaining
	Wins     int               `json:"wins"`
	Losses   int               `json:"losses"`
}

// CampaignState tracks cross-level progress and the faction-war record.
type CampaignState struct {
	Level        int                  `json:"level"` // 1–3; 0 = free play
	NetWorthGoal int64                `json:"net_worth_goal"`
	TotalProfit  int64                `json:"total_profit"`
	Defeated     []catalog.FactionID  `json:"defeated,omitempty"`
	War          *FactionWar          `json:"war,omitempty"`
	PendingRaid  catalog.LocationID   `json:"pending_raid,omitempty"`
}

// Capacity returns effective carrying capacity: base plus persona bonus,
// reduced by missing fingers.
func (p *PlayerState) Capacity() int {
	cap := p.BaseCapacity + catalog.PersonaByID(p.Persona).CapacityBonus
	cap -= (MaxFingers - p.Fingers) * capacityPerFinger
	if cap < 0 {
		cap = 0
	}
	return cap
}

// CarriedTotal returns the inventory unit sum.
func (p *PlayerState) CarriedTotal() int {
	total := 0
	for _, q := range p.Inventory {
		total += q
	}
	return total
}

// StockValue prices carried inventory at average cost.
func (p *PlayerState) StockValue() int64 {
	var v int64
	for id, q := range p.Inventory {
		v += int64(p.AvgCost[id] * float64(q))
	}
	return v
}

// NetWorth is cash + bank + stock at cost − debt.
func (p *PlayerState) NetWorth() int64 {
	return p.Cash + p.Bank + p.StockValue() - p.Debt
}

// Relation returns the clamped standing with a faction (0 if never met).
func (p *PlayerState) Relation(f catalog.FactionID) int {
	return p.Relations[f]
}

func (p *PlayerState) adjustRelation(f catalog.FactionID, delta int) {
	r := p.Relations[f] + delta
	if r < MinRelation {
		r = MinRelation
	}
	if r > MaxRelation {
		r = MaxRelation
	}
	p.Relations[f] = r
}

func (p *PlayerState) addHeat(delta int) {
	p.Heat += delta
	if p.Heat < 0 {
		p.Heat = 0
	}
	if p.Heat > MaxHeat {
		p.Heat = MaxHeat
	}
}

func (p *PlayerState) damage(points int) {
	p.Health -= points
	if p.Health < 0 {
		p.Health = 0
	}
}

func (p *PlayerState) heal(points int) {
	p.Health += points
	if p.Health > MaxHealth {
		p.Health = MaxHealth
	}
}

func (p *PlayerState) loseFingers(n int) {
	p.Fingers -= n
	if p.Fingers < 0 {
		p.Fingers = 0
	}
}

func (p *PlayerState) spendCash(amount int64) {
	p.Cash -= amount
	if p.Cash < 0 {
		p.Cash = 0
	}
}

func (p *PlayerState) addInventory(id catalog.CommodityID, qty int) {
	p.Inventory[id] += qty
	if p.Inventory[id] <= 0 {
		delete(p.Inventory, id)
		delete(p.AvgCost, id)
	}
}

func (p *PlayerState) logEvent(category, format string, args ...any) {
	p.Log = append(p.Log, LogEntry{
		Day:      p.Day,
		Category: category,
		Text:     fmt.Sprintf(format, args...),
	})
	if len(p.Log) > eventLogCap {
		p.Log = p.Log[len(p.Log)-eventLogCap:]
	}
}

// busy reports whether an active encounter blocks the action, noting it.
func (p *PlayerState) busy(res *Result) bool {
	if p.Encounter != nil {
		res.note("You can't do that right now — resolve the standoff first.")
		return true
	}
	return false
}
