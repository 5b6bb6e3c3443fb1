package market

import (
	"sort"

	"github.com/talgya/tidemarket/internal/world"
)

// Book is the global order book: a per-resource ordered list of live
// orders, an exponential moving average trade price, and a per-day demand
// counter. There is exactly one Book for the whole world (design doc
// Section 4.4 — "a global order book partitioned by ResourceItem").
type Book struct {
	cfg Config

	orders world.PerResource[[]*Order]
	price  world.PerResource[float64]
	demand world.PerResource[uint32]
}

// NewBook creates an empty order book.
func NewBook(cfg Config) *Book {
	return &Book{cfg: cfg}
}

// Step advances the book by one tick: resets daily demand, expires and
// re-prices orders, then re-sorts each resource's surviving orders ascending
// by cached price (design doc Section 4.4.1).
func (b *Book) Step(tick uint64) {
	if b.cfg.DayLength > 0 && tick%uint64(b.cfg.DayLength) == 0 {
		b.demand = world.PerResource[uint32]{}
	}

	for _, r := range world.AllResourceItems {
		list := b.orders[r]
		survivors := list[:0]
		for _, o := range list {
			if o.Expiration > 0 {
				o.Expiration--
			}
			if o.Expiration == 0 {
				continue // drop quietly — design doc Section 4.4.1, Open Question 1
			}

			if o.ReEval > 0 {
				o.ReEval--
			}
			if o.ReEval == 0 {
				b.reprice(o, r)
				o.ReEval = b.cfg.DefaultReEval
			}

			survivors = append(survivors, o)
		}
		sort.Slice(survivors, func(i, j int) bool { return survivors[i].CachedPrice < survivors[j].CachedPrice })
		b.orders[r] = survivors
	}
}

func (b *Book) reprice(o *Order, r world.ResourceItem) {
	marketPrice := uint32(b.price[r])
	if o.CachedPrice > marketPrice {
		o.CachedPrice -= (o.CachedPrice - marketPrice) / 2
	} else {
		o.CachedPrice = o.CachedPrice * b.cfg.OrderPriceDecay / 100
	}
}

// PlaceOrder places a new live order, inserted at the position that keeps the
// resource's order list sorted ascending by cached price. The caller is
// responsible for having already debited the placing agent's inventory by
// amount (design doc Section 4.4.2).
func (b *Book) PlaceOrder(agent world.EntityID, item world.ResourceItem, price, amount uint32) {
	o := &Order{
		Value:       price,
		CachedPrice: price,
		Amount:      amount,
		Agent:       agent,
		Expiration:  b.cfg.DefaultExpiration,
		ReEval:      b.cfg.DefaultReEval,
	}
	list := b.orders[item]
	idx := sort.Search(len(list), func(i int) bool { return list[i].CachedPrice >= o.CachedPrice })
	list = append(list, nil)
	copy(list[idx+1:], list[idx:])
	list[idx] = o
	b.orders[item] = list
}

// Buy walks item's orders from cheapest, filling as many of amount units as
// possible without letting the running cost exceed cashAvailable. The
// budget cap is strict per order: if taking the current order's full
// remaining quantity (or whatever's left to buy) would push the running
// cost over budget, the walk stops there even if a partial fill of that
// order would have fit (design doc Section 4.4.3). Fully-consumed orders
// are pruned from the book before returning.
func (b *Book) Buy(item world.ResourceItem, amount uint32, cashAvailable uint32) ([]Payment, uint32) {
	var payments []Payment
	remaining := amount
	accCost := uint32(0)

	list := b.orders[item]
	for _, o := range list {
		if remaining == 0 {
			break
		}
		q := o.Amount
		if remaining < q {
			q = remaining
		}
		costIfTaken := accCost + q*o.CachedPrice
		if costIfTaken > cashAvailable {
			break
		}

		o.Amount -= q
		payments = append(payments, Payment{Seller: o.Agent, Amount: q * o.CachedPrice})
		accCost = costIfTaken

		alpha := b.cfg.MarketPriceUpdate
		b.price[item] = b.price[item]*(1-alpha) + float64(o.CachedPrice)*alpha
		b.demand[item] += q

		remaining -= q
	}

	b.pruneEmpty(item)
	return payments, amount - remaining
}

func (b *Book) pruneEmpty(item world.ResourceItem) {
	list := b.orders[item]
	survivors := list[:0]
	for _, o := range list {
		if o.Amount > 0 {
			survivors = append(survivors, o)
		}
	}
	b.orders[item] = survivors
}

// CheapestPrices returns, for each resource, the front order's cached price
// and whether any order exists for that resource.
func (b *Book) CheapestPrices() (world.PerResource[uint32], world.PerResource[bool]) {
	var out world.PerResource[uint32]
	var ok world.PerResource[bool]
	for _, r := range world.AllResourceItems {
		if len(b.orders[r]) > 0 {
			out[r] = b.orders[r][0].CachedPrice
			ok[r] = true
		}
	}
	return out, ok
}

// Availability returns the total units offered for sale across all live
// orders of item.
func (b *Book) Availability(item world.ResourceItem) uint32 {
	var total uint32
	for _, o := range b.orders[item] {
		total += o.Amount
	}
	return total
}

// MarketPrice returns the current EMA trade price for a resource.
func (b *Book) MarketPrice(item world.ResourceItem) float64 {
	return b.price[item]
}

// MarketDemand returns the units sold today for a resource.
func (b *Book) MarketDemand(item world.ResourceItem) uint32 {
	return b.demand[item]
}

// TotalPrice sums market_price[r] * qty[r] over every resource — the
// engine's integer-EMA-based cost estimator (design doc Section 4.4.4).
func (b *Book) TotalPrice(qty world.PerResource[uint32]) float64 {
	var total float64
	for _, r := range world.AllResourceItems {
		total += float64(uint32(b.price[r])) * float64(qty[r])
	}
	return total
}

// OrderCount returns the number of live orders for item — used by the
// statistics hook to report market depth.
func (b *Book) OrderCount(item world.ResourceItem) int {
	return len(b.orders[item])
}
