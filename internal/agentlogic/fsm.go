package agentlogic

import (
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// Decide runs one agent's full decision tick: pre-dispatch checks followed
// by whichever state routine a.State.Kind names (design doc Section 4.5).
// pos is the agent's current grid position; it's meaningless while the
// agent is in_building; those states look up their own anchor (a.Home, the
// cached market target) instead.
func Decide(v *View, pos world.Pos, a *entity.Agent) Action {
	if act, done := preDispatch(v, a); done {
		return act
	}

	switch a.State.Kind {
	case entity.StateGoHome:
		return goHome(v, pos, a)
	case entity.StateBeHome:
		return beHome(v, a)
	case entity.StateDoJob:
		return doJob(v, pos, a)
	case entity.StateGoToMarket:
		return goToMarket(v, pos, a)
	case entity.StateTradeOnMarket:
		return tradeOnMarketStep(v, a)
	default:
		return Action{Kind: ActionNone}
	}
}

func goHome(v *View, pos world.Pos, a *entity.Agent) Action {
	if a.Job.Kind == entity.JobFisher && a.Job.Boat.Valid() &&
		v.Grid.TypeAt(pos) == world.TileSand && !pos.IsAdjacent(a.Home) {
		if p, ok := freeAdjacentWalkable(v, pos); ok {
			return Action{Kind: ActionLeaveBoat, Pos: p}
		}
		return Action{Kind: ActionNone}
	}

	target := a.Home
	move, hasMove, arrived := Pathfind(v, pos, &target, false)
	if arrived {
		a.State = entity.AgentState{Kind: entity.StateBeHome}
		updateQuotas(v, a)
		return Action{Kind: ActionEnter, Pos: a.Home, Building: a.Home}
	}
	if hasMove {
		return Action{Kind: ActionMove, Pos: move}
	}
	return Action{Kind: ActionNone}
}

func beHome(v *View, a *entity.Agent) Action {
	if a.Energy < v.Config.InitialEnergy && a.MealPlan != nil {
		for _, r := range world.AllResourceItems {
			if a.MealPlan[r] > 0 && a.Inventory[r] > 0 {
				q := a.MealPlan[r]
				if a.Inventory[r] < q {
					q = a.Inventory[r]
				}
				return Action{Kind: ActionConsume, Resource: r, Quantity: q}
			}
		}
		a.MealPlan = nil
		return Action{Kind: ActionNone}
	}

	p, ok := freeAdjacentWalkable(v, a.Home)
	if !ok {
		return Action{Kind: ActionNone}
	}
	if v.RNG.Bernoulli(0.5) {
		a.State = entity.AgentState{Kind: entity.StateDoJob}
	} else {
		a.State = entity.AgentState{Kind: entity.StateGoToMarket}
	}
	return Action{Kind: ActionLeave, Pos: p, Building: a.Home}
}

func doJob(v *View, pos world.Pos, a *entity.Agent) Action {
	if a.Energy < v.Config.CriticalEnergy || v.TimeOfDay() > v.Config.ClosingTime {
		a.State = entity.AgentState{Kind: entity.StateGoHome}
	}

	switch a.Job.Kind {
	case entity.JobLumberer:
		return findAndFarm(v, pos, world.Berry, false)
	case entity.JobFarmer:
		return findAndFarm(v, pos, world.Wheat, false)
	case entity.JobButcher:
		return findAndFarm(v, pos, world.Meat, false)
	case entity.JobFisher:
		return fisherStep(v, pos, a)
	case entity.JobExplorer:
		return explorerStep(v, pos, a)
	default:
		return Action{Kind: ActionNone}
	}
}

func goToMarket(v *View, pos world.Pos, a *entity.Agent) Action {
	if a.State.MarketTarget == nil {
		n := v.Config.SearchRadius * v.Config.SearchRadius
		p, found := v.Grid.FindEntityAround(pos, n, func(id world.EntityID, _ world.Pos) bool {
			if id == 0 {
				return false
			}
			e := v.Store.Get(id)
			return e.Kind == entity.KindBuilding && e.Building.Kind == entity.BuildingMarket
		})
		if found {
			target := p
			a.State.MarketTarget = &target
		}
	}

	move, hasMove, arrived := Pathfind(v, pos, a.State.MarketTarget, false)
	if arrived {
		target := *a.State.MarketTarget
		a.State.Kind = entity.StateTradeOnMarket
		return Action{Kind: ActionEnter, Pos: target, Building: target}
	}
	if hasMove {
		return Action{Kind: ActionMove, Pos: move}
	}
	return Action{Kind: ActionNone}
}

func tradeOnMarketStep(v *View, a *entity.Agent) Action {
	if v.TimeOfDay() < v.Config.ClosingTime {
		if act := tradeAction(v, a); act.Kind != ActionNone {
			return act
		}
	}

	anchor := a.Home
	if a.State.MarketTarget != nil {
		anchor = *a.State.MarketTarget
	}
	a.State = entity.AgentState{Kind: entity.StateGoHome}
	p, ok := freeAdjacentWalkable(v, anchor)
	if !ok {
		return Action{Kind: ActionNone}
	}
	return Action{Kind: ActionLeave, Pos: p, Building: anchor}
}

// freeAdjacentWalkable returns the first empty walkable tile adjacent to
// anchor, in compass order.
func freeAdjacentWalkable(v *View, anchor world.Pos) (world.Pos, bool) {
	for _, p := range v.Grid.Neighbors(anchor) {
		if v.Grid.Walkable(p) {
			return p, true
		}
	}
	return world.Pos{}, false
}
