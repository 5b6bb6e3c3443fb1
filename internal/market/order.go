// Package market implements the global, price-discovering order book:
// time-decayed limit orders, repricing, and budget-capped purchase walks.
// See design doc Section 4.4.
package market

import "github.com/talgya/tidemarket/internal/world"

// Order is a standing offer to sell Amount units of one resource at
// CachedPrice. Value is the price originally requested at placement and
// never changes; CachedPrice drifts toward the market price as the order
// re-evaluates.
type Order struct {
	Value       uint32
	CachedPrice uint32
	Amount      uint32
	Agent       world.EntityID
	Expiration  uint32
	ReEval      uint32
}

// Payment records one seller's proceeds from a single buy() walk.
type Payment struct {
	Seller world.EntityID
	Amount uint32 // crowns paid to this seller
}

// Config holds the market tunables a Book needs to step and reprice orders.
// Populated from the simulation's global Config (design doc Section 6).
type Config struct {
	DayLength          uint32
	DefaultExpiration   uint32
	DefaultReEval       uint32
	OrderPriceDecay     uint32 // percent, < 100
	MarketPriceUpdate   float64
}
