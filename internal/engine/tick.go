// Package engine drives the simulation forward one tick at a time: step the
// order book, decide and apply every agent's action, run resource respawn
// bookkeeping, and report through the statistics hooks. See design doc
// Section 4.6.
package engine

import (
	"time"

	"github.com/talgya/tidemarket/internal/agentlogic"
	"github.com/talgya/tidemarket/internal/config"
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/entropy"
	"github.com/talgya/tidemarket/internal/market"
	"github.com/talgya/tidemarket/internal/stats"
	"github.com/talgya/tidemarket/internal/world"
)

// World owns every piece of shared, single-threaded simulation state: the
// tile grid, the entity store, the order book, the configuration, and the
// per-instance RNG (design doc Section 5 — only the world-step driver
// mutates these).
type World struct {
	Grid   *world.Grid
	Store  *entity.Store
	Market *market.Book
	Config *config.Config
	RNG    *entropy.Source
	Stats  stats.Hooks

	Tick uint64

	// Speed and Interval govern Run's real-time pacing in interactive mode;
	// unused by Step/batch callers, which drive ticks directly.
	Speed    float64
	Interval time.Duration
	Running  bool
}

// NewWorld allocates an empty World from cfg. Call Init before stepping.
func NewWorld(cfg *config.Config) *World {
	return &World{
		Grid:   world.NewGrid(cfg.Width, cfg.Height, world.TileGrass),
		Store:  entity.NewStore(),
		Market: market.NewBook(market.Config{
			DayLength:         cfg.DayLength,
			DefaultExpiration: cfg.DefaultExpiration,
			DefaultReEval:     cfg.DefaultReEval,
			OrderPriceDecay:   cfg.OrderPriceDecay,
			MarketPriceUpdate: cfg.MarketPriceUpdate,
		}),
		Config:   cfg,
		RNG:      entropy.NewSource(cfg.Seed),
		Stats:    stats.Noop{},
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run drives Step in a real-time loop, pacing to Interval/Speed, until Stop
// is called. Intended for interactive mode.
func (w *World) Run(stop <-chan struct{}) {
	w.Running = true
	for w.Running {
		select {
		case <-stop:
			w.Running = false
			return
		default:
		}
		if w.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		w.Step()
		elapsed := time.Since(start)
		target := time.Duration(float64(w.Interval) / w.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}
}

// Stop halts a Run loop.
func (w *World) Stop() {
	w.Running = false
}

// Step executes exactly one tick (design doc Section 4.6): step the market,
// then visit every entity in insertion order, dispatching agents through
// the decision state machine and running resource respawn bookkeeping.
func (w *World) Step() {
	w.Market.Step(w.Tick)

	aliveCount := 0
	w.Store.Each(func(id world.EntityID, e *entity.Entity) {
		switch e.Kind {
		case entity.KindAgent:
			w.stepAgent(id, e)
			if !e.Agent.Dead {
				aliveCount++
			}
		case entity.KindResource:
			w.respawnResource(id, e)
		case entity.KindBuilding:
			// no-op
		}
	})

	var price world.PerResource[float64]
	var demand, avail world.PerResource[uint32]
	var orderCount world.PerResource[int]
	for _, r := range world.AllResourceItems {
		price[r] = w.Market.MarketPrice(r)
		demand[r] = w.Market.MarketDemand(r)
		avail[r] = w.Market.Availability(r)
		orderCount[r] = w.Market.OrderCount(r)
	}
	w.Stats.OnTick(stats.WorldSnapshot{
		Tick:               w.Tick,
		AliveCount:         aliveCount,
		MarketPrice:        price,
		MarketDemand:       demand,
		MarketAvailability: avail,
		MarketOrderCount:   orderCount,
	})

	w.Tick++
}

func (w *World) stepAgent(id world.EntityID, e *entity.Entity) {
	a := e.Agent
	wasDead := a.Dead
	view := &agentlogic.View{
		Grid:   w.Grid,
		Store:  w.Store,
		Market: w.Market,
		Config: w.Config,
		RNG:    w.RNG,
		Tick:   w.Tick,
	}

	act := agentlogic.Decide(view, e.Pos, a)
	w.applyAction(id, e, act)

	// An agent already dead on a prior tick gets no further OnAgentStep
	// calls — reporting it here, every tick, would count one death once
	// per remaining tick of the run instead of once (design doc Section 6).
	if wasDead {
		return
	}
	w.Stats.OnAgentStep(stats.AgentSnapshot{
		ID:     id,
		Tick:   w.Tick,
		Job:    a.Job.Kind,
		Cash:   a.Cash,
		Energy: a.Energy,
		Greed:  a.Greed,
		Dead:   a.Dead,
	})
}
