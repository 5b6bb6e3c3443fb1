package agentlogic

import (
	"math"

	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// tradeAction computes the single trade action for this tick, building the
// meal plan and shopping list first if either is missing (design doc
// Section 4.5.5). Priority order: sell excess inventory, then buy from the
// shopping list, then None.
func tradeAction(v *View, a *entity.Agent) Action {
	if a.MealPlan == nil {
		a.MealPlan = makeMealingPlan(v, a)
	}
	if a.ShoppingList == nil {
		a.ShoppingList = makeShoppingList(a, a.MealPlan)
	}

	if act, ok := sellExcess(v, a); ok {
		return act
	}
	if act, ok := buyFromShoppingList(a); ok {
		return act
	}
	return Action{Kind: ActionNone}
}

func sellExcess(v *View, a *entity.Agent) (Action, bool) {
	plan := a.MealPlan
	if plan == nil {
		plan = &world.PerResource[uint32]{}
	}
	for _, r := range world.AllResourceItems {
		if a.Inventory[r] <= plan[r] {
			continue
		}
		excess := a.Inventory[r] - plan[r]

		list := a.ShoppingList
		if list == nil {
			list = &world.PerResource[uint32]{}
		}
		totalCost := v.Market.TotalPrice(*list)
		balanceAfter := satSubFloat(float64(a.Cash), totalCost)
		insufficiency := satSubFloat(float64(a.CashQuota), balanceAfter)
		if insufficiency <= 0 {
			continue
		}
		price := uint32(math.Ceil(insufficiency / float64(excess)))
		return Action{Kind: ActionMarketOrder, Resource: r, Price: price, Amount: excess}, true
	}
	return Action{}, false
}

func buyFromShoppingList(a *entity.Agent) (Action, bool) {
	list := a.ShoppingList
	if list == nil {
		return Action{}, false
	}
	for i := len(world.AllResourceItems) - 1; i >= 0; i-- {
		r := world.AllResourceItems[i]
		if list[r] == 0 {
			continue
		}
		qty := list[r]
		list[r] = 0
		return Action{Kind: ActionMarketPurchase, Resource: r, Quantity: qty}, true
	}
	// Nothing left to buy: drop the list instead of caching an all-zero one.
	a.ShoppingList = nil
	return Action{}, false
}

func satSubFloat(a, b float64) float64 {
	v := a - b
	if v < 0 {
		return 0
	}
	return v
}
