// Game creation and campaign level transitions.
package game

import (
	"github.com/talgya/kingpin/internal/catalog"
)

// Starting conditions.
const (
	startCash     = 3500
	startDebt     = 4000
	startHealth   = 100
	startCapacity = 100
	daysPerLevel  = 30
)

// levelGoals are the campaign net-worth targets per level (index 0 unused).
var levelGoals = [...]int64{0, 50_000, 150_000, 400_000}

// FinalLevel is the last campaign level; clearing it wins the game.
const FinalLevel = 3

// Config selects starting options for a new game.
type Config struct {
	Persona  string // persona preset ID; empty = neutral
	Campaign bool   // campaign mode (levels) vs free play
}

// NewGame creates a fresh PlayerState and CampaignState. The player starts
// at the first region's arrival point with the opening market already
// rolled.
func (e *Engine) NewGame(cfg Config) (*PlayerState, *CampaignState) {
	start := e.Catalog.Regions[0].Arrival

	p := &PlayerState{
		Location:     start,
		Day:          1,
		DayLimit:     daysPerLevel,
		Cash:         startCash,
		Debt:         startDebt,
		Inventory:    make(map[catalog.CommodityID]int),
		AvgCost:      make(map[catalog.CommodityID]float64),
		BaseCapacity: startCapacity,
		Fingers:      MaxFingers,
		Health:       startHealth,
		Persona:      cfg.Persona,
		Relations:    make(map[catalog.FactionID]int),
		Territory:    make(map[catalog.LocationID]*Territory),
		Milestones:   make(map[string]bool),
	}

	camp := &CampaignState{}
	if cfg.Campaign {
		camp.Level = 1
		camp.NetWorthGoal = levelGoals[1]
	}

	e.refreshMarket(p, camp)
	p.logEvent("start", "Fresh off the bus at %s with $%d and $%d owed.",
		e.Catalog.MustLocation(start).Name, p.Cash, p.Debt)
	return p, camp
}

// AdvanceLevel moves a campaign to the next level after a level_complete
// phase: the day counter resets, the clock restarts, and the goal rises.
// Cash, goods, standing, and debts all carry over.
func (e *Engine) AdvanceLevel(p *PlayerState, camp *CampaignState) Result {
	var res Result
	res.Phase = PhasePlaying

	if camp.Level == 0 || camp.Level >= FinalLevel {
		res.note("There is no next level.")
		return res
	}

	camp.Level++
	camp.NetWorthGoal = levelGoals[camp.Level]
	p.Day = 1
	p.DayLimit = daysPerLevel

	e.refreshMarket(p, camp)
	p.logEvent("level", "Moving up: level %d. The target is $%d.", camp.Level, camp.NetWorthGoal)
	res.note("Word travels. Level %d begins — net worth target $%d in %d days.",
		camp.Level, camp.NetWorthGoal, p.DayLimit)
	res.effect(EffectSound("level-up"))
	return res
}

// currentLevel returns the campaign level, or 0 in free play.
func currentLevel(camp *CampaignState) int {
	if camp == nil {
		return 0
	}
	return camp.Level
}
