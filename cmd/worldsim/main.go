// Command worldsim runs the tidemarket forager-economy simulation, either
// interactively against a live HTTP status surface or headlessly across
// many repetitions for statistics collection.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	humanize "github.com/dustin/go-humanize"
	isatty "github.com/mattn/go-isatty"

	"github.com/talgya/tidemarket/internal/config"
	"github.com/talgya/tidemarket/internal/engine"
	"github.com/talgya/tidemarket/internal/httpapi"
	"github.com/talgya/tidemarket/internal/persistence"
	"github.com/talgya/tidemarket/internal/stats"
	"github.com/talgya/tidemarket/internal/terrain"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	mode := flag.String("mode", "interactive", "interactive or batch")
	configPath := flag.String("config", "", "YAML config file (defaults to built-in defaults)")
	addr := flag.String("addr", ":8080", "HTTP listen address (interactive mode only)")
	dbPath := flag.String("db", "data/tidemarket.db", "SQLite database path (batch mode only)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var err error
	switch *mode {
	case "interactive":
		err = interactive(cfg, *addr)
	case "batch":
		err = batch(cfg, *dbPath)
	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(1)
	}

	if err != nil {
		slog.Error("worldsim exited with error", "error", err)
		os.Exit(1)
	}
}

func interactive(cfg *config.Config, addr string) error {
	slog.Info("tidemarket — interactive mode", "seed", cfg.Seed, "width", cfg.Width, "height", cfg.Height)

	w := engine.NewWorld(cfg)
	w.Init(terrain.NewSimplexOracle(cfg))
	agg := stats.NewAggregator()
	w.Stats = agg

	server := httpapi.New(w)
	go func() {
		if err := server.ListenAndServe(addr); err != nil {
			slog.Error("httpapi server stopped", "error", err)
		}
	}()

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		close(stop)
	}()

	interactiveTTY := isatty.IsTerminal(os.Stdout.Fd())
	if interactiveTTY {
		fmt.Printf("tidemarket is alive: %dx%d world, seed %d.\n", cfg.Width, cfg.Height, cfg.Seed)
		fmt.Printf("status: http://localhost%s/status\n", addr)
		fmt.Println("Starting simulation... (Ctrl+C to stop)")
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				snap := agg.Snapshot()
				slog.Info("tick",
					"tick", snap.Tick,
					"alive", humanize.Comma(int64(snap.AliveCount)),
					"deaths", snap.DeathCount,
					"gini", fmt.Sprintf("%.3f", snap.Gini),
				)
			}
		}
	}()

	w.Run(stop)

	if interactiveTTY {
		fmt.Println("Simulation stopped.")
	}
	return nil
}

func batch(cfg *config.Config, dbPath string) error {
	slog.Info("tidemarket — batch mode", "repetitions", cfg.Repetitions, "steps", cfg.BatchTotalStepCount)

	if err := os.MkdirAll("data", 0o755); err != nil {
		return fmt.Errorf("batch: mkdir data: %w", err)
	}

	db, err := persistence.Open(dbPath)
	if err != nil {
		return fmt.Errorf("batch: open db: %w", err)
	}
	defer db.Close()

	// Repetitions are independent runs sharing nothing but the database
	// connection, so they fan out across a worker per CPU (design doc
	// Section 5 — batch instances run in parallel; each instance's own
	// determinism comes from its seed, not from execution order).
	workers := runtime.GOMAXPROCS(0)
	if int(cfg.Repetitions) < workers {
		workers = int(cfg.Repetitions)
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for rep := uint32(0); rep < cfg.Repetitions; rep++ {
		rep := rep
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := runBatchRepetition(db, cfg, rep); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return firstErr
}

func runBatchRepetition(db *persistence.DB, cfg *config.Config, rep uint32) error {
	repCfg := *cfg
	repCfg.Seed = cfg.Seed + int64(rep)

	started := time.Now()
	run := persistence.NewRun(repCfg.Seed, repCfg.Width, repCfg.Height)
	if err := db.InsertRun(run); err != nil {
		return fmt.Errorf("batch: insert run: %w", err)
	}

	w := engine.NewWorld(&repCfg)
	w.Init(terrain.NewSimplexOracle(&repCfg))
	agg := stats.NewAggregator()
	w.Stats = agg

	for t := uint32(0); t < repCfg.BatchTotalStepCount; t++ {
		w.Step()
		if t%repCfg.DayLength == 0 {
			if err := db.InsertSnapshot(run.ID, agg.Snapshot()); err != nil {
				return fmt.Errorf("batch: insert snapshot: %w", err)
			}
		}
	}
	if err := db.InsertSnapshot(run.ID, agg.Snapshot()); err != nil {
		return fmt.Errorf("batch: insert final snapshot: %w", err)
	}

	slog.Info("repetition complete",
		"run_id", run.ID,
		"seed", repCfg.Seed,
		"elapsed", humanize.RelTime(started, time.Now(), "", ""),
	)
	return nil
}
