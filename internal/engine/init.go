package engine

import (
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/terrain"
	"github.com/talgya/tidemarket/internal/world"
)

// Init populates an empty World by sampling oracle once per tile, then
// spawning one Agent per uninitialized Hut the oracle placed (design doc
// Section 6, "Terrain source").
func (w *World) Init(oracle terrain.Oracle) {
	for y := 0; y < w.Grid.Height; y++ {
		for x := 0; x < w.Grid.Width; x++ {
			pos := world.NewPos(x, y)
			s := oracle.Sample(pos)
			w.Grid.SetType(pos, s.Tile)
			if s.Entity != nil {
				w.seedEntity(pos, s.Entity)
			}
		}
	}
	w.spawnAgents()
}

func (w *World) seedEntity(pos world.Pos, init *terrain.EntityInit) {
	var e entity.Entity
	e.Pos = pos

	switch init.Kind {
	case terrain.InitHut:
		e.Kind = entity.KindBuilding
		e.Building = &entity.Building{Kind: entity.BuildingHut, Agent: world.Uninitialized}
	case terrain.InitMarket:
		e.Kind = entity.KindBuilding
		e.Building = &entity.Building{Kind: entity.BuildingMarket}
	case terrain.InitBoat:
		e.Kind = entity.KindBuilding
		e.Building = &entity.Building{Kind: entity.BuildingBoat}
	case terrain.InitResource:
		e.Kind = entity.KindResource
		e.Resource = &entity.Resource{Kind: init.Resource, Amount: init.Amount}
	default:
		return
	}

	id := w.Store.Add(e)
	w.Grid.SetEntity(pos, id)
}

// spawnAgents finds every Hut the terrain pass seeded without an owner and
// gives each a freshly-created Agent, linking both directions.
func (w *World) spawnAgents() {
	var huts []world.EntityID
	w.Store.Each(func(id world.EntityID, e *entity.Entity) {
		if e.Kind == entity.KindBuilding && e.Building.Kind == entity.BuildingHut && e.Building.Agent == world.Uninitialized {
			huts = append(huts, id)
		}
	})

	for _, hutID := range huts {
		hut := w.Store.Get(hutID)
		agentID := w.Store.Add(entity.Entity{
			Pos:   entity.DeadPos,
			Kind:  entity.KindAgent,
			Agent: w.newAgent(hut.Pos),
		})
		hut.Building.Agent = agentID
		hut.Building.Occupied = true
	}
}

func (w *World) newAgent(home world.Pos) *entity.Agent {
	cfg := w.Config

	var nutrition world.PerResource[uint8]
	var inventory world.PerResource[uint32]
	for _, r := range world.AllResourceItems {
		nutrition[r] = cfg.InitialNutrition
		inventory[r] = cfg.InitialInventory
	}

	return &entity.Agent{
		Job:          entity.Job{Kind: entity.JobExplorer},
		Home:         home,
		State:        entity.AgentState{Kind: entity.StateBeHome},
		Nutrition:    nutrition,
		Inventory:    inventory,
		Energy:       cfg.InitialEnergy,
		EnergyQuota:  cfg.InitialEnergy,
		Greed:        float32(w.RNG.Normal(float64(cfg.GreedMean), float64(cfg.GreedSD))),
		Cash:         cfg.InitialCash,
		CashQuota:    cfg.InitialCash,
		TimeoutQuota: cfg.TimeoutQuota,
		InBuilding:   true,
	}
}
