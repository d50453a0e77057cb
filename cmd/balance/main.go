// Command balance runs the Monte-Carlo balancing harness: many seeded
// games under scripted policies, one aggregate report per policy.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/kingpin/internal/balance"
	"github.com/talgya/kingpin/internal/catalog"
	"github.com/talgya/kingpin/internal/game"
)

func main() {
	var (
		games    = flag.Int("games", 1000, "games per policy")
		baseSeed = flag.Int64("seed", 1, "base seed (game i uses seed+i)")
		persona  = flag.String("persona", "operator", "persona preset")
		campaign = flag.Bool("campaign", true, "campaign mode")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cat := catalog.MustLoad()
	cfg := game.Config{Persona: *persona, Campaign: *campaign}

	policies := []func() balance.Policy{
		func() balance.Policy { return &balance.Trader{} },
		func() balance.Policy { return &balance.Coward{} },
	}

	for _, newPolicy := range policies {
		slog.Info("running policy", "policy", newPolicy().Name(), "games", *games, "base_seed", *baseSeed)
		rep := balance.RunMany(cat, *baseSeed, *games, cfg, newPolicy)
		fmt.Printf("\n%s over %d games:\n", rep.Policy, rep.Games)
		fmt.Printf("  win rate     %.1f%%\n", rep.WinRate()*100)
		fmt.Printf("  avg networth $%s\n", humanize.Comma(rep.AvgNetWorth))
		fmt.Printf("  avg profit   $%s\n", humanize.Comma(rep.AvgProfit))
		fmt.Printf("  avg trades   %d\n", rep.AvgTrades)
		fmt.Printf("  avg days     %d\n", rep.AvgDays)
		fmt.Printf("  best/worst   $%s / $%s\n",
			humanize.Comma(rep.BestNetWorth), humanize.Comma(rep.WorstNetWorth))
	}
}
