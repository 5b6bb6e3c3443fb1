package entity

import "github.com/talgya/tidemarket/internal/world"

// Resource is a forageable deposit of one ResourceItem sitting on a tile.
// amount > 0 implies timeout == 0; amount == 0 means depleted and either
// dormant (timeout counting down) or about to respawn.
type Resource struct {
	Kind    world.ResourceItem
	Amount  uint16
	Timeout uint16
}

// Farm attempts to harvest one unit. Returns (kind, true) if the resource
// had stock to give, or (_, false) if it was already depleted — in which
// case the agent gains nothing this tick and will re-search next tick
// (design doc Section 7, "resource depleted at farm time").
func (r *Resource) Farm() (world.ResourceItem, bool) {
	if r.Amount == 0 {
		return 0, false
	}
	r.Amount--
	return r.Kind, true
}
