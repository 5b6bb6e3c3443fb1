// Package httpapi exposes a read-only observability surface over a running
// simulation: world status, the live agent roster, and order-book depth.
// There is no admin or mutation plane — every route is a GET (design doc
// Section 6, "Observability HTTP surface").
package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/talgya/tidemarket/internal/engine"
	"github.com/talgya/tidemarket/internal/entity"
	"github.com/talgya/tidemarket/internal/world"
)

// Server serves read-only JSON views of a World. It does not own the
// World's lifecycle — the caller is expected to run World.Run elsewhere and
// pass the same instance here.
type Server struct {
	world *engine.World
	http.Handler
}

// New builds a Server wired to world's current state.
func New(w *engine.World) *Server {
	s := &Server{world: w}

	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/agents", s.handleAgents).Methods(http.MethodGet)
	r.HandleFunc("/market", s.handleMarket).Methods(http.MethodGet)
	s.Handler = r

	return s
}

// ListenAndServe starts serving on addr, logging via slog the way the rest
// of the simulation's ambient output does.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("httpapi: listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

type statusResponse struct {
	Tick        uint64 `json:"tick"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EntityCount int    `json:"entity_count"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, statusResponse{
		Tick:        s.world.Tick,
		Width:       s.world.Grid.Width,
		Height:      s.world.Grid.Height,
		EntityCount: s.world.Store.Len() - 1,
	})
}

type agentResponse struct {
	ID     world.EntityID `json:"id"`
	Pos    world.Pos      `json:"pos"`
	Job    string         `json:"job"`
	State  string         `json:"state"`
	Cash   uint32         `json:"cash"`
	Energy uint32         `json:"energy"`
	Dead   bool           `json:"dead"`
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	var out []agentResponse
	s.world.Store.Each(func(id world.EntityID, e *entity.Entity) {
		if e.Kind != entity.KindAgent {
			return
		}
		out = append(out, agentResponse{
			ID:     id,
			Pos:    e.Pos,
			Job:    e.Agent.Job.Kind.String(),
			State:  stateName(e.Agent.State.Kind),
			Cash:   e.Agent.Cash,
			Energy: e.Agent.Energy,
			Dead:   e.Agent.Dead,
		})
	})
	writeJSON(w, out)
}

type marketResponse struct {
	Resource   string  `json:"resource"`
	Price      float64 `json:"price"`
	Demand     uint32  `json:"demand"`
	Available  uint32  `json:"available"`
	OrderCount int     `json:"order_count"`
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	out := make([]marketResponse, 0, len(world.AllResourceItems))
	for _, item := range world.AllResourceItems {
		out = append(out, marketResponse{
			Resource:   item.String(),
			Price:      s.world.Market.MarketPrice(item),
			Demand:     s.world.Market.MarketDemand(item),
			Available:  s.world.Market.Availability(item),
			OrderCount: s.world.Market.OrderCount(item),
		})
	}
	writeJSON(w, out)
}

func stateName(k entity.StateKind) string {
	switch k {
	case entity.StateGoHome:
		return "go_home"
	case entity.StateBeHome:
		return "be_home"
	case entity.StateDoJob:
		return "do_job"
	case entity.StateGoToMarket:
		return "go_to_market"
	case entity.StateTradeOnMarket:
		return "trade_on_market"
	default:
		return "unknown"
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
	}
}
