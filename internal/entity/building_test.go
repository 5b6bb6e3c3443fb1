package entity

import "testing"

import "github.com/talgya/tidemarket/internal/world"

func TestHutOccupancyRoundTrip(t *testing.T) {
	hut := &Building{Kind: BuildingHut}
	if hut.Occupied {
		t.Fatal("expected a fresh hut to start unoccupied")
	}

	hut.Agent = world.EntityID(7)
	hut.AgentEnter()
	if !hut.Occupied {
		t.Fatal("expected AgentEnter to mark the hut occupied")
	}

	hut.AgentLeave()
	if hut.Occupied {
		t.Fatal("expected AgentLeave to restore the hut to unoccupied")
	}
}

func TestBoatOccupancyRoundTrip(t *testing.T) {
	boat := &Building{Kind: BuildingBoat}
	boat.AgentEnter()
	if !boat.HasAgent {
		t.Fatal("expected AgentEnter to mark the boat occupied")
	}
	boat.AgentLeave()
	if boat.HasAgent {
		t.Fatal("expected AgentLeave to restore the boat to unoccupied")
	}
}

func TestAgentEnterLeaveOnlyAffectsOwnKindFields(t *testing.T) {
	market := &Building{Kind: BuildingMarket}
	market.AgentEnter()
	if market.Occupied || market.HasAgent {
		t.Fatal("BuildingMarket has no occupancy fields to flip")
	}
	market.AgentLeave()
	if market.Occupied || market.HasAgent {
		t.Fatal("AgentLeave on a BuildingMarket should not flip occupancy fields")
	}
}
