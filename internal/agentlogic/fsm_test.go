package agentlogic

import (
	"testing"

	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

func TestGoHomeEntersAndUpdatesQuotasOnArrival(t *testing.T) {
	v := testView()
	home := world.Pos{X: 2, Y: 2}
	v.Store.Add(entity.Entity{Pos: home, Kind: entity.KindBuilding, Building: &entity.Building{Kind: entity.BuildingHut}})

	a := &entity.Agent{Home: home, Energy: v.Config.InitialEnergy, Cash: 100, CashQuota: 100}
	act := goHome(v, world.Pos{X: 2, Y: 3}, a) // adjacent to home

	if act.Kind != ActionEnter || act.Pos != home || act.Building != home {
		t.Fatalf("expected Enter at home on arrival, got %+v", act)
	}
	if a.State.Kind != entity.StateBeHome {
		t.Fatalf("expected state to become BeHome, got %v", a.State.Kind)
	}
	// energy == initial_energy, so updateQuotas sets energy_quota to energy.
	if a.EnergyQuota != v.Config.InitialEnergy {
		t.Fatalf("expected energy_quota updated to %d on arrival, got %d", v.Config.InitialEnergy, a.EnergyQuota)
	}
}

func TestBeHomeConsumesFromMealPlanWhenEnergyLow(t *testing.T) {
	v := testView()
	a := &entity.Agent{Energy: 0, State: entity.AgentState{Kind: entity.StateBeHome}}
	plan := &world.PerResource[uint32]{}
	plan[world.Wheat] = 5
	a.MealPlan = plan
	a.Inventory[world.Wheat] = 3

	act := beHome(v, a)
	if act.Kind != ActionConsume || act.Resource != world.Wheat {
		t.Fatalf("expected Consume wheat, got %+v", act)
	}
	if act.Quantity != 3 {
		t.Fatalf("expected to consume min(plan, inventory)=3, got %d", act.Quantity)
	}
}

func TestBeHomeClearsExhaustedMealPlan(t *testing.T) {
	v := testView()
	a := &entity.Agent{Energy: 0}
	plan := &world.PerResource[uint32]{} // all zero: nothing left to eat
	a.MealPlan = plan

	act := beHome(v, a)
	if act.Kind != ActionNone {
		t.Fatalf("expected None while clearing an exhausted meal plan, got %+v", act)
	}
	if a.MealPlan != nil {
		t.Fatal("expected meal plan to be cleared")
	}
}

func TestBeHomeLeavesWhenWellFed(t *testing.T) {
	v := testView()
	home := world.Pos{X: 5, Y: 5}
	a := &entity.Agent{Home: home, Energy: v.Config.InitialEnergy}

	act := beHome(v, a)
	if act.Kind != ActionLeave || act.Building != home {
		t.Fatalf("expected Leave from home, got %+v", act)
	}
	if a.State.Kind != entity.StateDoJob && a.State.Kind != entity.StateGoToMarket {
		t.Fatalf("expected a job-or-market transition, got %v", a.State.Kind)
	}
}

func TestTradeOnMarketStepLeavesAtMarketTargetWhenSet(t *testing.T) {
	v := testView()
	market := world.Pos{X: 7, Y: 7}
	a := &entity.Agent{
		Home:  world.Pos{X: 0, Y: 0},
		State: entity.AgentState{Kind: entity.StateTradeOnMarket, MarketTarget: &market},
	}
	// Closing time passed: TimeOfDay() returns 0 at tick 0, so force a
	// config with ClosingTime 0 to take the leave branch immediately.
	v.Config.ClosingTime = 0

	act := tradeOnMarketStep(v, a)
	if act.Kind != ActionLeave || act.Building != market {
		t.Fatalf("expected Leave anchored at the market target, got %+v", act)
	}
	if a.State.Kind != entity.StateGoHome {
		t.Fatalf("expected transition to GoHome, got %v", a.State.Kind)
	}
}
