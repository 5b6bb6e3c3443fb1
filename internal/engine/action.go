package engine

import (
	"fmt"

	"github.com/talgya/tidemarket/internal/agentlogic"
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// applyAction commits a decided Action against shared world state (design
// doc Section 4.6.1). Precondition violations are fatal: they indicate a
// bug in the decision layer, not a runtime fault (design doc Section 7).
func (w *World) applyAction(id world.EntityID, e *entity.Entity, act agentlogic.Action) {
	a := e.Agent

	switch act.Kind {
	case agentlogic.ActionNone:
		return

	case agentlogic.ActionMove:
		if a.InBuilding {
			panic(fmt.Sprintf("engine: agent %d emitted Move while in_building", id))
		}
		inBoat := a.Job.Kind == entity.JobFisher && a.Job.Boat.Valid()
		if !w.Grid.Walkable(act.Pos) && !(inBoat && w.Grid.Sailable(act.Pos)) {
			panic(fmt.Sprintf("engine: agent %d moved onto non-passable tile %v", id, act.Pos))
		}
		w.Grid.SetEntity(e.Pos, 0)
		w.Grid.SetEntity(act.Pos, id)
		e.Pos = act.Pos

	case agentlogic.ActionLeave:
		if !a.InBuilding {
			panic(fmt.Sprintf("engine: agent %d emitted Leave while not in_building", id))
		}
		a.InBuilding = false
		e.Pos = act.Pos
		w.Grid.SetEntity(act.Pos, id)
		w.notifyBuilding(act.Building, (*entity.Building).AgentLeave)

	case agentlogic.ActionEnter:
		w.Grid.SetEntity(e.Pos, 0)
		a.InBuilding = true
		w.notifyBuilding(act.Building, (*entity.Building).AgentEnter)

	case agentlogic.ActionEnterBoat:
		boatID := w.Grid.EntityAt(act.Pos)
		boat := w.Store.Get(boatID).Building
		boat.AgentEnter()
		w.Grid.SetEntity(e.Pos, 0)
		w.Grid.SetEntity(act.Pos, id)
		e.Pos = act.Pos
		a.Job.Boat = boatID

	case agentlogic.ActionLeaveBoat:
		current := e.Pos
		boat := w.Store.Get(a.Job.Boat).Building
		boat.AgentLeave()
		w.Store.Get(a.Job.Boat).Pos = current
		w.Grid.SetEntity(current, a.Job.Boat)
		e.Pos = act.Pos
		w.Grid.SetEntity(act.Pos, id)
		a.Job.Boat = 0

	case agentlogic.ActionFarm:
		target := w.Store.Get(w.Grid.EntityAt(act.Pos))
		if target.Kind != entity.KindResource {
			panic(fmt.Sprintf("engine: agent %d farmed non-resource tile %v", id, act.Pos))
		}
		if item, ok := target.Resource.Farm(); ok {
			a.Inventory[item]++
		}

	case agentlogic.ActionConsume:
		a.Inventory[act.Resource] -= act.Quantity
		gain := uint32(a.Nutrition[act.Resource]) * act.Quantity
		if a.Energy+gain > w.Config.MaxEnergy {
			a.Energy = w.Config.MaxEnergy
		} else {
			a.Energy += gain
		}
		satSubNutrition(&a.Nutrition[act.Resource], w.Config.NutritionSub, act.Quantity)
		for _, r := range world.AllResourceItems {
			if r == act.Resource {
				continue
			}
			addSatNutrition(&a.Nutrition[r], w.Config.NutritionAdd, act.Quantity)
		}

	case agentlogic.ActionMarketOrder:
		a.Inventory[act.Resource] -= act.Amount
		w.Market.PlaceOrder(id, act.Resource, act.Price, act.Amount)

	case agentlogic.ActionMarketPurchase:
		payments, bought := w.Market.Buy(act.Resource, act.Quantity, a.Cash)
		a.Inventory[act.Resource] += bought
		for _, p := range payments {
			a.Cash -= p.Amount
			w.Store.Get(p.Seller).Agent.Cash += p.Amount
		}

	case agentlogic.ActionDie:
		if a.InBuilding {
			switch {
			case a.State.Kind == entity.StateTradeOnMarket && a.State.MarketTarget != nil:
				w.notifyBuilding(*a.State.MarketTarget, (*entity.Building).AgentLeave)
			default:
				w.notifyBuilding(a.Home, (*entity.Building).AgentLeave)
			}
		} else {
			w.Grid.SetEntity(e.Pos, 0)
		}
		a.InBuilding = false
		a.Dead = true
		e.Pos = entity.DeadPos
	}
}

func (w *World) notifyBuilding(pos world.Pos, fn func(*entity.Building)) {
	id := w.Grid.EntityAt(pos)
	if !id.Valid() {
		return
	}
	target := w.Store.Get(id)
	if target.Kind != entity.KindBuilding {
		return
	}
	fn(target.Building)
}

func satSubNutrition(n *uint8, sub uint8, q uint32) {
	total := uint32(sub) * q
	if total >= uint32(*n) {
		*n = 0
		return
	}
	*n -= uint8(total)
}

func addSatNutrition(n *uint8, add uint8, q uint32) {
	total := uint32(add)*q + uint32(*n)
	if total > 255 {
		*n = 255
		return
	}
	*n = uint8(total)
}
