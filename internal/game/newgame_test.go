package game

import (
	"testing"
)

func TestNewGameOpeningState(t *testing.T) {
	eng, p, camp := newTestGame(t)
	_ = eng

	if p.Location != "market" {
		t.Fatalf("location = %s, want the first region's arrival point", p.Location)
	}
	if p.Cash != startCash || p.Debt != startDebt {
		t.Fatalf("cash=%d debt=%d, want the standard opening stake", p.Cash, p.Debt)
	}
	if p.Fingers != MaxFingers || p.Health != startHealth {
		t.Fatalf("fingers=%d health=%d", p.Fingers, p.Health)
	}
	if p.Day != 1 || p.DayLimit != daysPerLevel {
		t.Fatalf("day=%d limit=%d", p.Day, p.DayLimit)
	}
	if len(p.Prices) == 0 {
		t.Fatal("the opening market must be rolled")
	}
	if camp.Level != 0 {
		t.Fatalf("free play should carry no level, got %d", camp.Level)
	}
	assertInvariants(t, p)
}

func TestNewGameCampaignSetsFirstGoal(t *testing.T) {
	eng := New(testCatalog(t), quiet())
	_, camp := eng.NewGame(Config{Campaign: true})
	if camp.Level != 1 || camp.NetWorthGoal != levelGoals[1] {
		t.Fatalf("campaign = %+v", camp)
	}
}

func TestPersonaCapacityBonus(t *testing.T) {
	eng := New(testCatalog(t), quiet())
	p, _ := eng.NewGame(Config{Persona: "hauler"})
	if p.Capacity() != startCapacity+20 {
		t.Fatalf("capacity = %d, want %d", p.Capacity(), startCapacity+20)
	}
}

func TestCapacityShrinksWithLostFingers(t *testing.T) {
	_, p, _ := newTestGame(t)
	p.Fingers = 6
	if p.Capacity() != startCapacity-4*capacityPerFinger {
		t.Fatalf("capacity = %d, want %d", p.Capacity(), startCapacity-4*capacityPerFinger)
	}
}

func TestAdvanceLevelResetsClockAndRaisesGoal(t *testing.T) {
	eng := New(testCatalog(t), quiet())
	p, camp := eng.NewGame(Config{Campaign: true})
	p.Day = daysPerLevel + 1
	p.Cash = 80_000

	eng.AdvanceLevel(p, camp)

	if camp.Level != 2 || camp.NetWorthGoal != levelGoals[2] {
		t.Fatalf("campaign = %+v", camp)
	}
	if p.Day != 1 || p.DayLimit != daysPerLevel {
		t.Fatalf("day=%d limit=%d, want the clock restarted", p.Day, p.DayLimit)
	}
	// Holdings carry over.
	if p.Cash != 80_000 {
		t.Fatal("cash must carry across levels")
	}
}

func TestAdvanceLevelRefusesPastFinal(t *testing.T) {
	eng := New(testCatalog(t), quiet())
	p, camp := eng.NewGame(Config{Campaign: true})
	camp.Level = FinalLevel

	eng.AdvanceLevel(p, camp)
	if camp.Level != FinalLevel {
		t.Fatal("there is nothing past the final level")
	}

	_, free := eng.NewGame(Config{})
	eng.AdvanceLevel(p, free)
	if free.Level != 0 {
		t.Fatal("free play has no levels to advance")
	}
}
