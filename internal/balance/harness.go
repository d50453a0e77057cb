// Package balance drives the engine across many seeded games under
// scripted decision policies and aggregates the outcomes. It is the tuning
// instrument for the economy: it only touches the public engine operations
// and the seedable random source.
package balance

import (
	"github.com/talgya/kingpin/internal/catalog"
	"github.com/talgya/kingpin/internal/entropy"
	"github.com/talgya/kingpin/internal/game"
)

// Policy chooses the next move given the visible state. TakeTurn is called
// once per playing-phase step; the harness handles encounter phases by
// calling Encounter.
type Policy interface {
	Name() string
	// TakeTurn performs exactly one engine operation and returns its result.
	TakeTurn(e *game.Engine, p *game.PlayerState, camp *game.CampaignState) game.Result
	// Encounter picks the move for an active encounter.
	Encounter(p *game.PlayerState) game.EncounterChoice
}

// Outcome summarizes one finished game.
type Outcome struct {
	Seed     int64
	Phase    game.Phase
	Days     int
	NetWorth int64
	Profit   int64
	Trades   int
	Won      bool
}

// Report aggregates many outcomes.
type Report struct {
	Policy        string
	Games         int
	Wins          int
	AvgNetWorth   int64
	AvgProfit     int64
	AvgTrades     int
	AvgDays       int
	BestNetWorth  int64
	WorstNetWorth int64
}

// WinRate is wins over games.
func (r Report) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

const (
	maxStepsPerGame = 600 // hard stop against a stuck policy
	maxStallSteps   = 50  // steps without a day passing before the run forfeits
)

// RunOne plays a single game to a terminal phase under the policy.
// Identical (seed, policy) pairs reproduce identical outcomes. A policy
// that stops making progress (no day passes for maxStallSteps consecutive
// steps) forfeits the run as a loss, so every game terminates.
func RunOne(cat *catalog.Catalog, seed int64, cfg game.Config, policy Policy) Outcome {
	eng := game.New(cat, entropy.NewSeeded(seed))
	p, camp := eng.NewGame(cfg)

	phase := game.PhasePlaying
	lastDay, stalled := p.Day, 0
	for steps := 0; steps < maxStepsPerGame; steps++ {
		var res game.Result
		switch phase {
		case game.PhasePlaying:
			res = policy.TakeTurn(eng, p, camp)
		case game.PhaseCopEncounter:
			res = eng.EncounterAction(p, camp, policy.Encounter(p))
		case game.PhaseLevelComplete:
			res = eng.AdvanceLevel(p, camp)
		default:
			return finish(seed, phase, p)
		}
		phase = res.Phase
		if p.Day == lastDay {
			stalled++
			if stalled >= maxStallSteps {
				return finish(seed, game.PhaseEnd, p)
			}
		} else {
			lastDay, stalled = p.Day, 0
		}
	}
	return finish(seed, phase, p)
}

func finish(seed int64, phase game.Phase, p *game.PlayerState) Outcome {
	return Outcome{
		Seed:     seed,
		Phase:    phase,
		Days:     p.Day,
		NetWorth: p.NetWorth(),
		Profit:   p.Stats.Profit,
		Trades:   p.Stats.Trades,
		Won:      phase == game.PhaseWin,
	}
}

// RunMany plays games for seeds [baseSeed, baseSeed+games) and aggregates.
// newPolicy builds a fresh policy per game so no decision state leaks
// between seeds.
func RunMany(cat *catalog.Catalog, baseSeed int64, games int, cfg game.Config, newPolicy func() Policy) Report {
	rep := Report{Games: games}
	var netSum, profitSum int64
	var tradeSum, daySum int

	for i := 0; i < games; i++ {
		policy := newPolicy()
		if i == 0 {
			rep.Policy = policy.Name()
		}
		out := RunOne(cat, baseSeed+int64(i), cfg, policy)
		if out.Won {
			rep.Wins++
		}
		netSum += out.NetWorth
		profitSum += out.Profit
		tradeSum += out.Trades
		daySum += out.Days
		if i == 0 || out.NetWorth > rep.BestNetWorth {
			rep.BestNetWorth = out.NetWorth
		}
		if i == 0 || out.NetWorth < rep.WorstNetWorth {
			rep.WorstNetWorth = out.NetWorth
		}
	}
	if games > 0 {
		rep.AvgNetWorth = netSum / int64(games)
		rep.AvgProfit = profitSum / int64(games)
		rep.AvgTrades = tradeSum / games
		rep.AvgDays = daySum / games
	}
	return rep
}
