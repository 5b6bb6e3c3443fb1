// Package stats defines the engine's two statistics callbacks and a default
// aggregator that accumulates job/greed distribution, death count, wealth
// inequality, and market depth over a run. See design doc Section 6,
// "Statistics hook".
package stats

import (
	"sort"

	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// AgentSnapshot is the read-only view of one agent the engine hands to
// OnAgentStep, exactly once per non-dead agent per tick, plus once more on
// the tick it transitions to dead.
type AgentSnapshot struct {
	ID     world.EntityID
	Tick   uint64
	Job    entity.JobKind
	Cash   uint32
	Energy uint32
	Greed  float32
	Dead   bool
}

// WorldSnapshot is the read-only view of global state the engine hands to
// OnTick, once per tick after every agent has stepped.
type WorldSnapshot struct {
	Tick               uint64
	AliveCount         int
	MarketPrice        world.PerResource[float64]
	MarketDemand       world.PerResource[uint32]
	MarketAvailability world.PerResource[uint32]
	MarketOrderCount   world.PerResource[int]
}

// Hooks is the pair of callbacks the engine invokes; implementations may
// aggregate, export, or ignore either.
type Hooks interface {
	OnAgentStep(snap AgentSnapshot)
	OnTick(snap WorldSnapshot)
}

// Noop implements Hooks by discarding everything — the default for
// interactive mode when no exporter is attached.
type Noop struct{}

func (Noop) OnAgentStep(AgentSnapshot) {}
func (Noop) OnTick(WorldSnapshot)      {}

// Aggregator accumulates one tick's worth of per-agent observations at a
// time: OnAgentStep calls for a new tick reset the running job/wealth/greed
// tallies, so memory stays bounded by population size rather than growing
// over the life of a batch run. DeathCount is cumulative across the whole
// run; everything else in Snapshot describes only the tick most recently
// closed out by OnTick.
type Aggregator struct {
	jobCounts map[entity.JobKind]int
	jobCash   map[entity.JobKind]uint64
	wealths   []uint64
	greeds    []float32

	currentTick uint64
	deathCount  int
	lastWorld   WorldSnapshot
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		jobCounts: make(map[entity.JobKind]int),
		jobCash:   make(map[entity.JobKind]uint64),
	}
}

func (a *Aggregator) OnAgentStep(snap AgentSnapshot) {
	if snap.Tick != a.currentTick {
		a.resetTick(snap.Tick)
	}
	if snap.Dead {
		a.deathCount++
		return
	}
	a.jobCounts[snap.Job]++
	a.jobCash[snap.Job] += uint64(snap.Cash)
	a.wealths = append(a.wealths, uint64(snap.Cash))
	a.greeds = append(a.greeds, snap.Greed)
}

func (a *Aggregator) resetTick(tick uint64) {
	a.currentTick = tick
	a.jobCounts = make(map[entity.JobKind]int)
	a.jobCash = make(map[entity.JobKind]uint64)
	a.wealths = a.wealths[:0]
	a.greeds = a.greeds[:0]
}

func (a *Aggregator) OnTick(snap WorldSnapshot) {
	a.lastWorld = snap
}

// Snapshot is the aggregated summary for the most recently closed tick, plus
// the death count accumulated over the whole run.
type Snapshot struct {
	Tick       uint64
	AliveCount int
	JobCounts  map[entity.JobKind]int
	AvgJobCash map[entity.JobKind]float64
	Gini       float64
	AvgGreed   float64
	DeathCount int
	Market     WorldSnapshot
}

// Snapshot summarizes the tick most recently closed by OnTick.
func (a *Aggregator) Snapshot() Snapshot {
	avgCash := make(map[entity.JobKind]float64, len(a.jobCounts))
	for job, count := range a.jobCounts {
		if count > 0 {
			avgCash[job] = float64(a.jobCash[job]) / float64(count)
		}
	}

	var avgGreed float64
	for _, g := range a.greeds {
		avgGreed += float64(g)
	}
	if len(a.greeds) > 0 {
		avgGreed /= float64(len(a.greeds))
	}

	return Snapshot{
		Tick:       a.lastTick(),
		AliveCount: a.lastWorld.AliveCount,
		JobCounts:  a.jobCounts,
		AvgJobCash: avgCash,
		Gini:       giniCoefficient(a.wealths),
		AvgGreed:   avgGreed,
		DeathCount: a.deathCount,
		Market:     a.lastWorld,
	}
}

func (a *Aggregator) lastTick() uint64 {
	return a.lastWorld.Tick
}

// giniCoefficient computes wealth inequality over wealths:
// G = (2*Σ(i*wᵢ))/(n*Σwᵢ) - (n+1)/n, i 1-indexed over ascending wealths.
func giniCoefficient(wealths []uint64) float64 {
	n := len(wealths)
	if n < 2 {
		return 0
	}
	sorted := make([]uint64, n)
	copy(sorted, wealths)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total, weighted uint64
	for i, w := range sorted {
		total += w
		weighted += uint64(i+1) * w
	}
	if total == 0 {
		return 0
	}
	return (2.0*float64(weighted))/(float64(n)*float64(total)) - float64(n+1)/float64(n)
}
