package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/reify-dev/reify/internal/config"
	"github.com/reify-dev/reify/pkg/element"
	"github.com/reify-dev/reify/pkg/elementtest"
	"github.com/reify-dev/reify/pkg/inspect"
	"github.com/reify-dev/reify/pkg/metrics"
)

func simCmd() *cobra.Command {
	var (
		ticks       int
		nodes       int
		churn       float64
		rateHz      int
		seed        int64
		inspectAddr string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a synthetic reconciliation workload",
		Long: `Run the engine against a recording renderer with a churning
synthetic tree, then report reconciliation statistics.

Each tick replaces a configurable fraction of the tree's nodes,
toggles an optional overlay on and off, and swaps one element's
type, exercising keyed identity, lens projection, and dynamic
type fallback together.

Examples:
  reify sim
  reify sim --nodes=256 --churn=0.1
  reify sim --inspect=localhost:7878`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			if ticks > 0 {
				cfg.Sim.Ticks = ticks
			}
			if nodes > 0 {
				cfg.Sim.Nodes = nodes
			}
			if cmd.Flags().Changed("churn") {
				cfg.Sim.Churn = churn
			}
			if rateHz > 0 {
				cfg.Sim.RateHz = rateHz
			}
			if seed != 0 {
				cfg.Sim.Seed = seed
			}
			if inspectAddr != "" {
				cfg.Inspect.Enabled = true
				cfg.Inspect.Addr = inspectAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSim(cfg, verbose)
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "t", 0, "Ticks to run (default from reify.json)")
	cmd.Flags().IntVarP(&nodes, "nodes", "n", 0, "Synthetic tree width")
	cmd.Flags().Float64VarP(&churn, "churn", "c", 0, "Fraction of nodes replaced per tick")
	cmd.Flags().IntVarP(&rateHz, "rate", "r", 0, "Tick rate in hertz")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Churn RNG seed (0 seeds from the clock)")
	cmd.Flags().StringVar(&inspectAddr, "inspect", "", "Serve the inspect API on this address")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every reconciliation pass")

	return cmd
}

// simItem is one churned entry in the synthetic tree. Replacing an item
// swaps its id, which destroys the old node and creates a fresh one.
type simItem struct {
	id    int
	value int
}

// hudState is the projected overlay substate. Nil while hidden.
type hudState struct {
	frame int
}

type simState struct {
	items []simItem
	hud   *hudState
	blink bool
}

// simReify declares the synthetic tree: a keyed list of probes, a lensed
// overlay, and one slot that alternates between two leaf types behind
// Dynamic.
func simReify(rec *elementtest.Recorder) func(*simState) element.Element[simState] {
	return func(s *simState) element.Element[simState] {
		// Trees are regenerated from scratch every tick; nothing built on a
		// previous tick may be reused.
		overlay := element.Build[hudState](elementtest.Probe[hudState]{Name: "hud", Rec: rec}).
			Child(element.Build[hudState](elementtest.Shared[hudState]{Name: "hud-res", Rec: rec}))

		kids := make([]element.Element[simState], 0, len(s.items))
		for _, it := range s.items {
			kids = append(kids, element.
				Build[simState](elementtest.Probe[simState]{
					Name:  fmt.Sprintf("item-%d", it.id),
					Value: it.value,
					Rec:   rec,
				}).
				Identify(it.id))
		}

		var flip element.Element[simState]
		if s.blink {
			flip = element.Dynamic(element.Build[simState](elementtest.Beacon[simState]{Name: "blink", Rec: rec}))
		} else {
			flip = element.Dynamic(element.Build[simState](elementtest.Probe[simState]{Name: "blink", Rec: rec}))
		}

		return element.Group[simState]().
			Children(kids...).
			Child(flip).
			Child(element.Project(overlay, func(s *simState) *hudState { return s.hud }))
	}
}

// passTally sums reconciliation stats across the whole run.
type passTally struct {
	creates, updates, destroys, failures int
	frames                               int
	reconciles                           int
	reconcileTime                        time.Duration
	frameTime                            time.Duration
}

func (t *passTally) Op(element.OpEvent) {}

func (t *passTally) Pass(p element.PassStats) {
	switch p.Kind {
	case element.PassReconcile:
		t.reconciles++
		t.creates += p.Creates
		t.updates += p.Updates
		t.destroys += p.Destroys
		t.failures += p.Failures
		t.reconcileTime += p.Duration
	case element.PassFrame:
		t.frames += p.Frames
		t.frameTime += p.Duration
	}
}

func runSim(cfg *config.Config, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	reg := prometheus.NewRegistry()
	col := metrics.New(metrics.WithRegistry(reg))
	tally := &passTally{}

	opts := []element.Option{
		element.WithLogger(log),
		element.WithObserver(col),
		element.WithObserver(tally),
	}

	var srv *inspect.Server
	if cfg.Inspect.Enabled {
		srv = inspect.New(inspect.WithLogger(log), inspect.WithGatherer(reg))
		opts = append(opts, element.WithObserver(srv))
		go func() {
			if err := srv.Start(cfg.Inspect.Addr); err != nil {
				log.Error("inspect server failed", "error", err)
			}
		}()
	}

	state := &simState{items: make([]simItem, cfg.Sim.Nodes)}
	nextID := 0
	for i := range state.items {
		state.items[i] = simItem{id: nextID, value: rng.Intn(1000)}
		nextID++
	}

	rec := elementtest.NewRecorder()
	view := element.NewView(simReify(rec), state, elementtest.FakeNode{Name: "root"}, opts...)
	if srv != nil {
		srv.Watch(view)
	}

	delta := time.Second / time.Duration(cfg.Sim.RateHz)
	started := time.Now()

	for i := 0; i < cfg.Sim.Ticks; i++ {
		churnState(state, rng, cfg.Sim.Churn, &nextID, i)
		view.Update(state)
		view.Frame(element.TickInfo{
			Delta:   delta,
			Elapsed: time.Since(started),
			Frame:   uint64(i + 1),
		}, state)

		if verbose {
			log.Debug("tick complete", "tick", i+1, "nodes", len(view.Snapshot()))
		}
		if cfg.Inspect.Enabled {
			time.Sleep(delta)
		}
	}

	view.Close()

	if srv != nil {
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("inspect shutdown failed", "error", err)
		}
	}

	printBanner()
	fmt.Println()
	info("ticks:       %d (%d nodes, churn %.2f, seed %d)", cfg.Sim.Ticks, cfg.Sim.Nodes, cfg.Sim.Churn, seed)
	info("creates:     %d", tally.creates)
	info("updates:     %d", tally.updates)
	info("destroys:    %d", tally.destroys)
	info("failures:    %d", tally.failures)
	info("frames:      %d", tally.frames)
	info("reconcile:   %s total, %s/tick", tally.reconcileTime, avg(tally.reconcileTime, tally.reconciles))
	info("frame:       %s total, %s/tick", tally.frameTime, avg(tally.frameTime, cfg.Sim.Ticks))
	fmt.Println()
	return nil
}

// churnState advances the synthetic state one tick: replace a fraction of
// items, bump the survivors, toggle the overlay, and flip the dynamic slot.
func churnState(s *simState, rng *rand.Rand, churn float64, nextID *int, tick int) {
	for i := range s.items {
		if rng.Float64() < churn {
			s.items[i] = simItem{id: *nextID, value: rng.Intn(1000)}
			*nextID++
			continue
		}
		s.items[i].value++
	}

	// Overlay visible for the second half of every 40-tick window.
	if tick%40 >= 20 {
		if s.hud == nil {
			s.hud = &hudState{}
		}
		s.hud.frame = tick
	} else {
		s.hud = nil
	}

	s.blink = tick%10 >= 5
}

func avg(total time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}
