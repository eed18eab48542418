package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fynnbrem/homepage/internal/metrics"
	"github.com/fynnbrem/homepage/internal/physics"
	"github.com/fynnbrem/homepage/internal/sim"
	"github.com/fynnbrem/homepage/internal/storage"
	"github.com/fynnbrem/homepage/internal/viz"
)

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewContacts(),
		metrics.NewStability(0),
	}
}

func runArena(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	arena, world, err := s.Build()
	if err != nil {
		return err
	}

	simulator := sim.New(arena, world)
	for _, m := range defaultMetrics() {
		simulator.AddMetric(m)
	}
	cfg := s.SimConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if realtime {
		return runRealtime(ctx, simulator, cfg)
	}

	fmt.Printf("running %s for %d ticks...\n", s.Name, cfg.Ticks)
	start := time.Now()
	result, err := simulator.Run(ctx, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("ticks: %d\n", result.StepsTaken)
	fmt.Printf("contacts: %d\n", result.Contacts)
	fmt.Printf("energy: %.3f -> %.3f\n", result.InitialEnergy, result.FinalEnergy)
	printMetrics(result.Metrics)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveArena(s.Name, world, cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func runRealtime(ctx context.Context, simulator *sim.Simulator, cfg sim.Config) error {
	every := int(cfg.TickRate)
	if every <= 0 {
		every = int(sim.DefaultTickRate)
	}
	logger.Info("running in real time, interrupt to stop")
	err := simulator.RunRealtime(ctx, cfg, func(a *physics.Arena) bool {
		if a.Tick()%every == 0 {
			logger.Info("tick", "tick", a.Tick(), "energy", a.KineticEnergy(), "contacts", a.TotalContacts())
		}
		return true
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	arena, world, err := s.Build()
	if err != nil {
		return err
	}
	return viz.RunArena(s.Name, arena, world)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepVals) == 0 {
		return fmt.Errorf("no values given for %s", sweepParam)
	}
	s, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	arena, world, err := s.Build()
	if err != nil {
		return err
	}
	worlds, err := sim.WorldsFor(world, sweepParam, sweepVals)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := sim.Sweep(ctx, arena, worlds, s.SimConfig(), defaultMetrics)
	logger.Debug("sweep done", "runs", len(results), "elapsed", time.Since(start))

	var names []string
	for _, m := range defaultMetrics() {
		names = append(names, m.Name())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, sweepParam, "\tCONTACTS")
	for _, name := range names {
		fmt.Fprint(w, "\t", name)
	}
	fmt.Fprintln(w)

	for i, r := range results {
		fmt.Fprintf(w, "%g", sweepVals[i])
		if r.Err != nil {
			fmt.Fprintf(w, "\terror: %v\n", r.Err)
			continue
		}
		fmt.Fprintf(w, "\t%d", r.Result.Contacts)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Result.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
