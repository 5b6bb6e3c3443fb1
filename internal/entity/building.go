package entity

import "github.com/talgya/tidemarket/internal/world"

// BuildingKind enumerates the three building variants.
type BuildingKind uint8

const (
	BuildingMarket BuildingKind = iota
	BuildingHut
	BuildingBoat
)

// Building is a structure entity. Fields are only meaningful for their own
// Kind: Occupied/Agent for BuildingHut, HasAgent for BuildingBoat.
type Building struct {
	Kind BuildingKind

	// Hut
	Occupied bool
	Agent    world.EntityID // world.Uninitialized during multi-phase init

	// Boat
	HasAgent bool
}

// AgentEnter notifies a building that an agent has entered it.
func (b *Building) AgentEnter() {
	switch b.Kind {
	case BuildingHut:
		b.Occupied = true
	case BuildingBoat:
		b.HasAgent = true
	}
}

// AgentLeave notifies a building that its occupant has left.
func (b *Building) AgentLeave() {
	switch b.Kind {
	case BuildingHut:
		b.Occupied = false
	case BuildingBoat:
		b.HasAgent = false
	}
}
