package agentlogic

import (
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// searchResource spirals outward from from looking for a live Resource
// entity of the given kind with stock remaining (design doc Section 4.5.3).
func searchResource(v *View, from world.Pos, item world.ResourceItem) (world.Pos, bool) {
	n := v.Config.SearchRadius * v.Config.SearchRadius
	return v.Grid.FindEntityAround(from, n, func(id world.EntityID, _ world.Pos) bool {
		if id == 0 {
			return false
		}
		e := v.Store.Get(id)
		return e.Kind == entity.KindResource && e.Resource.Kind == item && e.Resource.Amount > 0
	})
}

// findAndFarm is the shared routine behind Lumberer, Farmer and Butcher:
// locate the nearest live resource of the job's kind, farm it once adjacent,
// otherwise step toward it (falling back to a random walk if none is found
// within range).
func findAndFarm(v *View, from world.Pos, item world.ResourceItem, sail bool) Action {
	pos, found := searchResource(v, from, item)
	var target *world.Pos
	if found {
		target = &pos
	}
	move, hasMove, arrived := Pathfind(v, from, target, sail)
	if arrived {
		return Action{Kind: ActionFarm, Pos: pos}
	}
	if hasMove {
		return Action{Kind: ActionMove, Pos: move}
	}
	return Action{Kind: ActionNone}
}

// fisherStep implements the Fisher job's boat-seeking / open-water / farming
// cycle (design doc Section 4.5.3).
func fisherStep(v *View, from world.Pos, a *entity.Agent) Action {
	if !a.Job.Boat.Valid() {
		return boardBoat(v, from)
	}
	if v.Grid.TypeAt(from) != world.TileWater {
		return sailToWater(v, from)
	}
	return findAndFarm(v, from, world.Fish, true)
}

func boardBoat(v *View, from world.Pos) Action {
	n := v.Config.SearchRadius * v.Config.SearchRadius
	pos, found := v.Grid.FindEntityAround(from, n, func(id world.EntityID, _ world.Pos) bool {
		if id == 0 {
			return false
		}
		e := v.Store.Get(id)
		return e.Kind == entity.KindBuilding && e.Building.Kind == entity.BuildingBoat
	})
	var target *world.Pos
	if found {
		target = &pos
	}
	move, hasMove, arrived := Pathfind(v, from, target, false)
	if arrived {
		return Action{Kind: ActionEnterBoat, Pos: pos}
	}
	if hasMove {
		return Action{Kind: ActionMove, Pos: move}
	}
	return Action{Kind: ActionNone}
}

func sailToWater(v *View, from world.Pos) Action {
	n := v.Config.SearchRadius * v.Config.SearchRadius
	pos, found := v.Grid.FindTileAround(from, n, func(p world.Pos) bool {
		return v.Grid.TypeAt(p) == world.TileWater && v.Grid.Sailable(p)
	})
	if !found {
		move, hasMove, _ := Pathfind(v, from, nil, true)
		if hasMove {
			return Action{Kind: ActionMove, Pos: move}
		}
		return Action{Kind: ActionNone}
	}
	move, hasMove := MoveOnto(v, from, pos, true)
	if hasMove {
		return Action{Kind: ActionMove, Pos: move}
	}
	return Action{Kind: ActionNone}
}

// explorerStep accumulates sighting scores over the tiles within range,
// converts the agent to the best-scoring job once its observation window
// closes, and wanders one random step every tick, the converting tick
// included (design doc Section 4.5.3).
func explorerStep(v *View, from world.Pos, a *entity.Agent) Action {
	n := v.Config.SearchRadius * v.Config.SearchRadius
	for _, p := range v.Grid.TilesAround(from, n) {
		id := v.Grid.EntityAt(p)
		if id == 0 {
			continue
		}
		e := v.Store.Get(id)
		switch e.Kind {
		case entity.KindResource:
			a.Job.ExplorerObservations[e.Resource.Kind] += uint32(e.Resource.Amount) / v.Config.ExplorerResourceDivisor
		case entity.KindBuilding:
			if e.Building.Kind == entity.BuildingBoat {
				a.Job.ExplorerObservations[world.Fish] += v.Config.ExplorerFishPoints
			}
		}
	}

	a.Job.ExplorerCount++
	if a.Job.ExplorerCount >= v.Config.ExplorationTimeout {
		convertExplorer(a)
	}

	d := world.AllDirections[v.RNG.Intn(len(world.AllDirections))]
	target := v.Grid.Wrap(from.Step(d))
	if v.Grid.Walkable(target) {
		return Action{Kind: ActionMove, Pos: target}
	}
	return Action{Kind: ActionNone}
}

// convertExplorer picks the resource with the highest accumulated
// observation score and reassigns the agent to the matching production job.
func convertExplorer(a *entity.Agent) {
	best := world.AllResourceItems[0]
	for _, r := range world.AllResourceItems {
		if a.Job.ExplorerObservations[r] > a.Job.ExplorerObservations[best] {
			best = r
		}
	}
	kind := jobForResource(best)
	a.Job = entity.Job{Kind: kind}
}

func jobForResource(r world.ResourceItem) entity.JobKind {
	switch r {
	case world.Wheat:
		return entity.JobFarmer
	case world.Berry:
		return entity.JobLumberer
	case world.Meat:
		return entity.JobButcher
	case world.Fish:
		return entity.JobFisher
	default:
		return entity.JobExplorer
	}
}
