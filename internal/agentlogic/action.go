// Package agentlogic implements the per-agent decision state machine:
// pre-dispatch, state transitions, job routines, mealing/shopping planning,
// trading policy, quota update, and greedy-with-jitter pathfinding.
// See design doc Section 4.5.
package agentlogic

import (
	"github.com/talgya/tidemarket/internal/config"
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/entropy"
	"github.com/talgya/tidemarket/internal/market"
	"github.com/talgya/tidemarket/internal/world"
)

// ActionKind enumerates every effect an agent's decision can produce.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionLeave
	ActionEnter
	ActionEnterBoat
	ActionLeaveBoat
	ActionFarm
	ActionConsume
	ActionMarketOrder
	ActionMarketPurchase
	ActionDie
)

// Action is the single effect an agent's Step produces for the world-step
// driver to apply atomically (design doc Section 4.6.1). Only the fields
// relevant to Kind are meaningful.
type Action struct {
	Kind ActionKind

	Pos world.Pos // Move/Leave/Enter/EnterBoat/LeaveBoat target, Farm's tile

	Building world.Pos // Enter/Leave only: the building entity's own tile

	Resource world.ResourceItem // Consume/MarketOrder/MarketPurchase
	Quantity uint32             // Consume amount, MarketPurchase amount
	Price    uint32             // MarketOrder price
	Amount   uint32             // MarketOrder amount
}

// View is the read-only world context an agent's decision is computed
// against: pure queries during the decision phase, with the resulting
// Action applied mutably afterward by the world-step driver (design doc
// Section 5).
type View struct {
	Grid   *world.Grid
	Store  *entity.Store
	Market *market.Book
	Config *config.Config
	RNG    *entropy.Source
	Tick   uint64
}

// TimeOfDay returns tick's position within the current day.
func (v *View) TimeOfDay() uint32 {
	if v.Config.DayLength == 0 {
		return 0
	}
	return uint32(v.Tick % uint64(v.Config.DayLength))
}
