package market

import "testing"

import "github.com/talgya/tidemarket/internal/world"

func testConfig() Config {
	return Config{
		DayLength:         100,
		DefaultExpiration: 10,
		DefaultReEval:     5,
		OrderPriceDecay:   75,
		MarketPriceUpdate: 0.01,
	}
}

func TestPlaceOrderKeepsSortedAscending(t *testing.T) {
	b := NewBook(testConfig())
	b.PlaceOrder(1, world.Wheat, 50, 10)
	b.PlaceOrder(2, world.Wheat, 10, 5)
	b.PlaceOrder(3, world.Wheat, 30, 5)

	list := b.orders[world.Wheat]
	if len(list) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].CachedPrice > list[i].CachedPrice {
			t.Fatalf("order book not sorted ascending: %v", list)
		}
	}
}

func TestRepriceTowardMarketOrDecay(t *testing.T) {
	b := NewBook(testConfig())
	b.price[world.Wheat] = 0
	o := &Order{CachedPrice: 100, Amount: 1, ReEval: 1, Expiration: 10}
	b.reprice(o, world.Wheat)
	if o.CachedPrice != 50 {
		t.Fatalf("expected reprice toward market to halve the gap (100 -> 50), got %d", o.CachedPrice)
	}
}

func TestRepriceDecaysWhenAtOrBelowMarket(t *testing.T) {
	b := NewBook(testConfig())
	b.price[world.Wheat] = 100
	o := &Order{CachedPrice: 80, Amount: 1, ReEval: 1, Expiration: 10}
	b.reprice(o, world.Wheat)
	// At-or-below market: decay by OrderPriceDecay%, not walk toward market.
	// 80 * 75 / 100 = 60.
	if o.CachedPrice != 60 {
		t.Fatalf("expected decay to 80*75/100=60, got %d", o.CachedPrice)
	}
}

func TestExpiredOrdersDropQuietly(t *testing.T) {
	b := NewBook(testConfig())
	b.PlaceOrder(1, world.Berry, 20, 5)
	b.orders[world.Berry][0].Expiration = 1

	b.Step(1)

	if len(b.orders[world.Berry]) != 0 {
		t.Fatalf("expected order to expire and drop, got %d remaining", len(b.orders[world.Berry]))
	}
}

func TestBuyFillsWholeRequestFromCheapestOrderWithinBudget(t *testing.T) {
	b := NewBook(testConfig())
	b.PlaceOrder(1, world.Berry, 10, 10) // cheap order, 10 units @ 10
	b.PlaceOrder(2, world.Berry, 30, 10) // expensive order, 10 units @ 30

	payments, bought := b.Buy(world.Berry, 8, 100)

	// Cheap order covers all 10 units at price 10, but the buyer only wants
	// 8: 8*10=80 <= 100, fully satisfied from the first order alone.
	if bought != 8 {
		t.Fatalf("expected 8 units bought, got %d", bought)
	}
	if len(payments) != 1 || payments[0].Amount != 80 {
		t.Fatalf("expected single payment of 80, got %+v", payments)
	}
}

func TestBuyAcrossOrdersRespectsStrictBudget(t *testing.T) {
	b := NewBook(testConfig())
	b.PlaceOrder(1, world.Berry, 10, 5) // 5 units @ 10 = 50 total
	b.PlaceOrder(2, world.Berry, 30, 10)

	// Buyer wants 8 units with only 100 cash. First order: 5*10=50.
	// Remaining 3 units from the second order at 30 each would cost 90,
	// pushing the running total to 140 > 100, so the walk stops after the
	// first order even though 1 more unit (50+30=80) would have fit.
	payments, bought := b.Buy(world.Berry, 8, 100)
	if bought != 5 {
		t.Fatalf("expected strict per-order budget cap to stop at 5 units, got %d", bought)
	}
	if len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
}

func TestPruneEmptyRemovesFullyConsumedOrders(t *testing.T) {
	b := NewBook(testConfig())
	b.PlaceOrder(1, world.Fish, 10, 5)
	b.Buy(world.Fish, 5, 1000)

	if len(b.orders[world.Fish]) != 0 {
		t.Fatalf("expected fully consumed order to be pruned, got %d remaining", len(b.orders[world.Fish]))
	}
}

func TestTotalPriceSumsAcrossResources(t *testing.T) {
	b := NewBook(testConfig())
	b.price[world.Wheat] = 2
	b.price[world.Berry] = 3
	var qty world.PerResource[uint32]
	qty[world.Wheat] = 4
	qty[world.Berry] = 2
	got := b.TotalPrice(qty)
	if got != 14 {
		t.Fatalf("expected 4*2 + 2*3 = 14, got %v", got)
	}
}
