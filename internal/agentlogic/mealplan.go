package agentlogic

import (
	"sort"

	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// makeMealingPlan decides how much of each resource the agent intends to
// eat to close its energy deficit, cheapest calories-per-coin first (design
// doc Section 4.5.4). Returns nil if the agent isn't in deficit.
func makeMealingPlan(v *View, a *entity.Agent) *world.PerResource[uint32] {
	if a.Energy >= a.EnergyQuota {
		return nil
	}
	needed := a.EnergyQuota - a.Energy

	order := make([]world.ResourceItem, len(world.AllResourceItems))
	copy(order, world.AllResourceItems[:])
	sort.Slice(order, func(i, j int) bool {
		ri, rj := order[i], order[j]
		scoreI := float64(a.Nutrition[ri]) / (v.Market.MarketPrice(ri) + 1)
		scoreJ := float64(a.Nutrition[rj]) / (v.Market.MarketPrice(rj) + 1)
		return scoreI > scoreJ
	})

	var plan world.PerResource[uint32]
	for _, r := range order {
		nutrition := uint32(a.Nutrition[r])
		if nutrition == 0 {
			continue
		}
		need := ceilDiv(needed, nutrition)
		avail := v.Market.Availability(r) + a.Inventory[r]

		if avail >= need {
			plan[r] = need
			return &plan
		}
		plan[r] = avail
		needed = satSub(needed, need*nutrition)
	}
	return &plan
}

// makeShoppingList is the meal plan minus current inventory, componentwise
// and floored at zero (design doc Section 4.5.4). Returns nil if the
// resulting list is entirely zero.
func makeShoppingList(a *entity.Agent, plan *world.PerResource[uint32]) *world.PerResource[uint32] {
	if plan == nil {
		return nil
	}
	var list world.PerResource[uint32]
	anyPositive := false
	for _, r := range world.AllResourceItems {
		list[r] = satSub(plan[r], a.Inventory[r])
		if list[r] > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return nil
	}
	return &list
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func satSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
