// Command kingpin runs the trading game in a terminal. It is a thin
// presentation layer: it reads engine state, prints notifications, renders
// effect tags as text, and forwards typed commands to engine operations.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/kingpin/internal/catalog"
	"github.com/talgya/kingpin/internal/entropy"
	"github.com/talgya/kingpin/internal/game"
	"github.com/talgya/kingpin/internal/persistence"
)

func main() {
	var (
		seed     = flag.Int64("seed", 0, "random seed (0 = from system entropy)")
		persona  = flag.String("persona", "operator", "starting persona preset")
		campaign = flag.Bool("campaign", true, "campaign mode with levels")
		dbPath   = flag.String("db", "kingpin.db", "saved-game database path")
		load     = flag.String("load", "", "session ID to resume")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cat := catalog.MustLoad()

	var src entropy.Source
	actualSeed := *seed
	if actualSeed == 0 {
		src = entropy.NewSystem()
	} else {
		src = entropy.NewSeeded(actualSeed)
	}
	eng := game.New(cat, src)

	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open save database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		p       *game.PlayerState
		camp    *game.CampaignState
		session string
	)
	if *load != "" {
		p, camp, actualSeed, err = db.Load(*load)
		if err != nil {
			slog.Error("failed to load save", "session", *load, "error", err)
			os.Exit(1)
		}
		session = *load
		fmt.Printf("Resumed session %s, day %d.\n", session, p.Day)
	} else {
		p, camp = eng.NewGame(game.Config{Persona: *persona, Campaign: *campaign})
		session = persistence.NewSession()
		fmt.Println("A new month, a new debt, a city that doesn't know your name yet.")
	}

	phase := game.PhasePlaying
	printStatus(cat, p, camp)

	sc := bufio.NewScanner(os.Stdin)
	for {
		switch phase {
		case game.PhaseEnd:
			fmt.Println("\n=== GAME OVER ===")
			return
		case game.PhaseWin:
			fmt.Println("\n=== YOU WIN ===")
			return
		case game.PhaseLevelComplete:
			res := eng.AdvanceLevel(p, camp)
			printResult(res)
			phase = res.Phase
			continue
		}

		if phase == game.PhaseCopEncounter {
			fmt.Print("\n[standoff] run / fight / pay > ")
		} else {
			fmt.Print("\n> ")
		}
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(strings.ToLower(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		res, handled := dispatch(eng, db, cat, p, camp, session, actualSeed, phase, fields)
		if !handled {
			continue
		}
		printResult(res)
		phase = res.Phase
		if phase == game.PhasePlaying {
			printStatus(cat, p, camp)
		}
	}
}

func dispatch(eng *game.Engine, db *persistence.DB, cat *catalog.Catalog,
	p *game.PlayerState, camp *game.CampaignState,
	session string, seed int64, phase game.Phase, fields []string) (game.Result, bool) {

	cmd, args := fields[0], fields[1:]

	if phase == game.PhaseCopEncounter {
		switch cmd {
		case "run":
			return eng.EncounterAction(p, camp, game.ChoiceRun), true
		case "fight":
			return eng.EncounterAction(p, camp, game.ChoiceFight), true
		case "pay", "bribe", "negotiate":
			return eng.EncounterAction(p, camp, game.ChoiceBribe), true
		default:
			fmt.Println("They're waiting. run, fight, or pay.")
			return game.Result{}, false
		}
	}

	switch cmd {
	case "go", "travel":
		if len(args) < 1 {
			fmt.Println("go where? Try: go", exampleLocation(cat))
			return game.Result{}, false
		}
		return eng.Travel(p, camp, catalog.LocationID(args[0])), true
	case "buy":
		id, qty, ok := parseTrade(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.Buy(p, id, qty), true
	case "sell":
		id, qty, ok := parseTrade(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.Sell(p, id, qty), true
	case "accept":
		return eng.AcceptOffer(p, camp), true
	case "decline":
		return eng.DeclineOffer(p), true
	case "deposit":
		amt, ok := parseAmount(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.Deposit(p, amt), true
	case "withdraw":
		amt, ok := parseAmount(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.Withdraw(p, amt), true
	case "paydebt":
		amt, ok := parseAmount(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.PayDebt(p, amt), true
	case "borrow":
		amt, ok := parseAmount(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.Borrow(p, amt), true
	case "loan":
		if len(args) < 2 {
			fmt.Println("loan <faction> <amount>")
			return game.Result{}, false
		}
		amt, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println("loan <faction> <amount>")
			return game.Result{}, false
		}
		return eng.BorrowFaction(p, catalog.FactionID(args[0]), amt), true
	case "payconsign":
		amt, ok := parseAmount(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.PayConsignment(p, amt), true
	case "payloan":
		amt, ok := parseAmount(args)
		if !ok {
			return game.Result{}, false
		}
		return eng.PayLoan(p, amt), true
	case "tip":
		return eng.AskTip(p), true
	case "stash":
		if len(args) < 3 {
			fmt.Println("stash put|take <commodity> <qty>")
			return game.Result{}, false
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Println("stash put|take <commodity> <qty>")
			return game.Result{}, false
		}
		if args[0] == "put" {
			return eng.StashDeposit(p, catalog.CommodityID(args[1]), qty), true
		}
		return eng.StashWithdraw(p, catalog.CommodityID(args[1]), qty), true
	case "war":
		if len(args) < 1 {
			fmt.Println("war <faction>")
			return game.Result{}, false
		}
		return eng.DeclareWar(p, camp, catalog.FactionID(args[0])), true
	case "battle":
		return eng.Battle(p, camp), true
	case "raid":
		return eng.Raid(p, camp), true
	case "prices":
		printPrices(cat, p)
		return game.Result{}, false
	case "status":
		printStatus(cat, p, camp)
		return game.Result{}, false
	case "log":
		printLog(p)
		return game.Result{}, false
	case "save":
		if err := db.Save(session, seed, p, camp); err != nil {
			fmt.Println("save failed:", err)
		} else {
			fmt.Println("Saved. Session:", session)
		}
		return game.Result{}, false
	case "help":
		printHelp()
		return game.Result{}, false
	case "quit", "exit":
		os.Exit(0)
	}
	fmt.Println("Unknown command. Try: help")
	return game.Result{}, false
}

func parseTrade(args []string) (catalog.CommodityID, int, bool) {
	if len(args) < 2 {
		fmt.Println("need: <commodity> <qty>")
		return "", 0, false
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("need: <commodity> <qty>")
		return "", 0, false
	}
	return catalog.CommodityID(args[0]), qty, true
}

func parseAmount(args []string) (int64, bool) {
	if len(args) < 1 {
		fmt.Println("need: <amount>")
		return 0, false
	}
	amt, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("need: <amount>")
		return 0, false
	}
	return amt, true
}

func printResult(res game.Result) {
	for _, n := range res.Notes {
		fmt.Println(" ", n)
	}
	for _, e := range res.Effects {
		fmt.Printf("  [%s]\n", e)
	}
}

func printStatus(cat *catalog.Catalog, p *game.PlayerState, camp *game.CampaignState) {
	loc := cat.MustLocation(p.Location)
	region := cat.MustRegion(loc.Region)
	fmt.Printf("\n-- Day %d/%d  %s (%s)  %s --\n",
		p.Day, p.DayLimit, loc.Name, region.Name, catalog.RankFor(p.Reputation))
	fmt.Printf("cash $%s  bank $%s  debt $%s  net $%s\n",
		humanize.Comma(p.Cash), humanize.Comma(p.Bank),
		humanize.Comma(p.Debt), humanize.Comma(p.NetWorth()))
	fmt.Printf("health %d  heat %d  fingers %d  hold %d/%d",
		p.Health, p.Heat, p.Fingers, p.CarriedTotal(), p.Capacity())
	if p.Armed {
		fmt.Print("  [armed]")
	}
	fmt.Println()
	if camp.Level > 0 {
		fmt.Printf("level %d — target $%s\n", camp.Level, humanize.Comma(camp.NetWorthGoal))
	}
	if c := p.Consignment; c != nil {
		fmt.Printf("consignment: $%s to %s in %d days\n",
			humanize.Comma(c.Owed), cat.MustFaction(c.Faction).Name, c.DaysLeft)
	}
	if l := p.Loan; l != nil {
		fmt.Printf("loan: $%s to %s in %d days\n",
			humanize.Comma(l.Owed), cat.MustFaction(l.Faction).Name, l.DaysLeft)
	}
	if m := p.Mission; m != nil {
		fmt.Printf("job: %d %s to %s, %d days\n",
			m.Quantity, cat.MustCommodity(m.Commodity).Name, cat.MustLocation(m.Dest).Name, m.DaysLeft)
	}
	printPrices(cat, p)
}

func printPrices(cat *catalog.Catalog, p *game.PlayerState) {
	ids := make([]string, 0, len(p.Prices))
	for id := range p.Prices {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		cm := cat.MustCommodity(catalog.CommodityID(id))
		held := p.Inventory[catalog.CommodityID(id)]
		line := fmt.Sprintf("  %-10s %-20s $%s", id, cm.Name, humanize.Comma(p.Prices[catalog.CommodityID(id)]))
		if held > 0 {
			line += fmt.Sprintf("  (holding %d @ $%.0f)", held, p.AvgCost[catalog.CommodityID(id)])
		}
		fmt.Println(line)
	}
}

func printLog(p *game.PlayerState) {
	start := 0
	if len(p.Log) > 15 {
		start = len(p.Log) - 15
	}
	for _, entry := range p.Log[start:] {
		fmt.Printf("  day %-3d [%s] %s\n", entry.Day, entry.Category, entry.Text)
	}
}

func exampleLocation(cat *catalog.Catalog) string {
	return string(cat.Locations[0].ID)
}

func printHelp() {
	fmt.Print(`commands:
  go <location>            travel (region gateways apply)
  buy/sell <commodity> <n> trade at local prices
  accept / decline         answer the pending offer
  deposit/withdraw <n>     bank
  paydebt/borrow <n>       the loan shark
  loan <faction> <n>       faction cash loan (at their home turf)
  payconsign/payloan <n>   pay down credit instruments
  tip                      buy a forecast from your informant
  stash put|take <c> <n>   territory stash
  war <faction> / battle / raid
  prices / status / log / save / quit
`)
}
