package engine

import (
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// respawnResource runs one tick of dormancy/regrowth bookkeeping for a
// depleted resource (design doc Section 4.6.2). A live resource (amount >
// 0) is untouched here.
func (w *World) respawnResource(id world.EntityID, e *entity.Entity) {
	r := e.Resource
	if r.Amount > 0 {
		return
	}

	switch {
	case r.Timeout == 0:
		r.Timeout = w.Config.ResourceTimeout
		w.Grid.SetEntity(e.Pos, 0)
	case r.Timeout == 1 && w.Grid.EntityAt(e.Pos) == 0:
		w.Grid.SetEntity(e.Pos, id)
		r.Timeout = 0
		r.Amount = uint16(w.RNG.Normal(float64(w.Config.ResourceAmountMean), float64(w.Config.ResourceAmountSD)))
	default:
		r.Timeout--
	}
}
