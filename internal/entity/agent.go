package entity

import "github.com/talgya/tidemarket/internal/world"

// JobKind enumerates an agent's occupation.
type JobKind uint8

const (
	JobLumberer JobKind = iota
	JobFarmer
	JobButcher
	JobFisher
	JobExplorer
)

func (k JobKind) String() string {
	switch k {
	case JobLumberer:
		return "lumberer"
	case JobFarmer:
		return "farmer"
	case JobButcher:
		return "butcher"
	case JobFisher:
		return "fisher"
	case JobExplorer:
		return "explorer"
	default:
		return "unknown"
	}
}

// Job carries the occupation and any occupation-specific state. Boat is
// only meaningful when Kind == JobFisher (0 means the fisher has no boat
// yet); ExplorerCount/ExplorerObservations are only meaningful when Kind ==
// JobExplorer.
type Job struct {
	Kind                 JobKind
	Boat                 world.EntityID
	ExplorerCount        uint16
	ExplorerObservations world.PerResource[uint32]
}

// StateKind enumerates the agent decision state machine's states (design
// doc Section 4.5).
type StateKind uint8

const (
	StateGoHome StateKind = iota
	StateBeHome
	StateDoJob
	StateGoToMarket
	StateTradeOnMarket
)

// AgentState is the agent's current FSM state plus any cached data a state
// carries between ticks (GoToMarket's cached target).
type AgentState struct {
	Kind         StateKind
	MarketTarget *world.Pos // nil until GoToMarket has located a market
}

// Agent is the full mutable state of one simulated forager (design doc
// Section 3).
type Agent struct {
	Job  Job
	Home world.Pos
	State AgentState

	Nutrition world.PerResource[uint8]
	Inventory world.PerResource[uint32]

	Energy      uint32
	EnergyQuota uint32

	Greed float32

	Cash         uint32
	CashQuota    uint32
	TimeoutQuota uint16

	MealPlan     *world.PerResource[uint32]
	ShoppingList *world.PerResource[uint32]

	InBuilding bool
	Dead       bool
}
