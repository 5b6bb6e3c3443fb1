package engine

import (
	"testing"

	"github.com/talgya/tidemarket/internal/agentlogic"
	"github.com/talgya/tidemarket/internal/config"
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/stats"
	"github.com/talgya/tidemarket/internal/world"
)

func starvationWorld(t *testing.T, energyCost, initialEnergy uint32) (*World, world.EntityID) {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 10, 10
	cfg.EnergyCost = energyCost
	cfg.InitialEnergy = initialEnergy

	w := NewWorld(cfg)
	home := world.Pos{X: 5, Y: 5}
	hutID := w.Store.Add(entity.Entity{
		Pos:      home,
		Kind:     entity.KindBuilding,
		Building: &entity.Building{Kind: entity.BuildingHut, Occupied: true},
	})
	w.Grid.SetEntity(home, hutID)

	agentID := w.Store.Add(entity.Entity{
		Pos:  entity.DeadPos,
		Kind: entity.KindAgent,
		Agent: &entity.Agent{
			Home:       home,
			State:      entity.AgentState{Kind: entity.StateBeHome},
			Energy:     initialEnergy,
			InBuilding: true,
		},
	})
	w.Store.Get(hutID).Building.Agent = agentID

	return w, agentID
}

func TestAgentStarvesAtExactTick(t *testing.T) {
	w, agentID := starvationWorld(t, 1, 100)

	var diedAtTick uint64
	for w.Tick < 1000 {
		tickBeforeStep := w.Tick
		w.Step()
		if w.Store.Get(agentID).Agent.Dead {
			diedAtTick = tickBeforeStep
			break
		}
	}

	if !w.Store.Get(agentID).Agent.Dead {
		t.Fatal("expected agent to have died from starvation")
	}
	// energy_cost=1, initial_energy=100: energy hits 0 on the 100th
	// decrement, i.e. the tick numbered 99 (0-indexed).
	if diedAtTick != 99 {
		t.Fatalf("expected death on tick 99, got %d", diedAtTick)
	}
}

func TestDeadAgentLeavesNoTileOccupancy(t *testing.T) {
	w, agentID := starvationWorld(t, 50, 100)
	for i := 0; i < 10 && !w.Store.Get(agentID).Agent.Dead; i++ {
		w.Step()
	}
	a := w.Store.Get(agentID).Agent
	if !a.Dead {
		t.Fatal("expected agent to be dead")
	}
	if a.InBuilding {
		t.Fatal("a dead agent should no longer be recorded as in_building")
	}
	for y := 0; y < w.Grid.Height; y++ {
		for x := 0; x < w.Grid.Width; x++ {
			if p := world.NewPos(x, y); w.Grid.EntityAt(p) == agentID {
				t.Fatalf("dead agent still occupies tile %v", p)
			}
		}
	}
}

func TestDeathCountStaysAtActualDeathsPastDeathTick(t *testing.T) {
	w, agentID := starvationWorld(t, 1, 100)
	agg := stats.NewAggregator()
	w.Stats = agg

	for w.Tick < 500 {
		w.Step()
	}

	if !w.Store.Get(agentID).Agent.Dead {
		t.Fatal("expected the agent to have died")
	}
	if got := agg.Snapshot().DeathCount; got != 1 {
		t.Fatalf("expected DeathCount to stay at 1 death, got %d (OnAgentStep must have fired for an already-dead agent)", got)
	}
}

func TestResourceRespawnCycle(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 5, 5
	cfg.ResourceTimeout = 2
	cfg.ResourceAmountMean = 10
	cfg.ResourceAmountSD = 0

	w := NewWorld(cfg)
	pos := world.Pos{X: 1, Y: 1}
	id := w.Store.Add(entity.Entity{
		Pos:      pos,
		Kind:     entity.KindResource,
		Resource: &entity.Resource{Kind: world.Berry, Amount: 0, Timeout: 0},
	})
	w.Grid.SetEntity(pos, id)

	// Timeout==0: clears the tile and starts the countdown.
	w.respawnResource(id, w.Store.Get(id))
	if w.Grid.EntityAt(pos) != 0 {
		t.Fatal("expected tile cleared when dormancy starts")
	}
	if w.Store.Get(id).Resource.Timeout != cfg.ResourceTimeout {
		t.Fatalf("expected timeout reset to %d, got %d", cfg.ResourceTimeout, w.Store.Get(id).Resource.Timeout)
	}

	// Countdown: Timeout 2 -> 1.
	w.respawnResource(id, w.Store.Get(id))
	if w.Store.Get(id).Resource.Timeout != 1 {
		t.Fatalf("expected timeout to decrement to 1, got %d", w.Store.Get(id).Resource.Timeout)
	}

	// Timeout==1 and tile empty: respawns with a resampled amount.
	w.respawnResource(id, w.Store.Get(id))
	r := w.Store.Get(id).Resource
	if r.Timeout != 0 {
		t.Fatalf("expected timeout reset to 0 on respawn, got %d", r.Timeout)
	}
	if r.Amount == 0 {
		t.Fatal("expected a resampled positive amount on respawn")
	}
	if w.Grid.EntityAt(pos) != id {
		t.Fatal("expected the resource to reoccupy its tile on respawn")
	}
}

func TestFarmAddsToInventoryAndDepletesResource(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 5, 5
	w := NewWorld(cfg)

	pos := world.Pos{X: 2, Y: 2}
	resID := w.Store.Add(entity.Entity{
		Pos:      pos,
		Kind:     entity.KindResource,
		Resource: &entity.Resource{Kind: world.Berry, Amount: 1},
	})
	w.Grid.SetEntity(pos, resID)

	agentEntity := &entity.Entity{Pos: world.Pos{X: 1, Y: 1}, Kind: entity.KindAgent, Agent: &entity.Agent{}}
	agentID := w.Store.Add(*agentEntity)

	w.applyAction(agentID, w.Store.Get(agentID), agentlogic.Action{Kind: agentlogic.ActionFarm, Pos: pos})

	a := w.Store.Get(agentID).Agent
	if a.Inventory[world.Berry] != 1 {
		t.Fatalf("expected 1 berry harvested into inventory, got %d", a.Inventory[world.Berry])
	}
	if w.Store.Get(resID).Resource.Amount != 0 {
		t.Fatal("expected the resource's amount to be depleted by one farm")
	}
}
