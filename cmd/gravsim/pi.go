package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/dynamo"
	"github.com/fynnbrem/homepage/internal/storage"
	"github.com/fynnbrem/homepage/internal/viz"
)

func piScenario(cmd *cobra.Command) (collider.Setup, collider.Options, error) {
	s, err := loadScenario(cmd)
	if err != nil {
		return collider.Setup{}, collider.Options{}, err
	}
	return s.PiSetup()
}

func runPi(cmd *cobra.Command, args []string) error {
	setup, opts, err := piScenario(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	worker := collider.NewWorker(logger)
	defer worker.Stop()

	fmt.Printf("mass ratio 1:%g\n", setup.MassRatio)
	resp, err := worker.Calculate(ctx, collider.Request{ID: 1, Config: setup.Blocks, Options: opts})
	if err != nil {
		return err
	}
	if resp.Err != "" {
		logger.Warn("simulation stopped early", "err", resp.Err, "records", len(resp.Records))
	}

	fmt.Printf("collisions: %d\n", resp.Collisions)
	fmt.Printf("expected:   %d\n", collider.PiDigits(setup.Digits))
	fmt.Printf("records:    %d\n", len(resp.Records))
	fmt.Printf("elapsed:    %v\n", resp.Elapsed)

	if len(resp.Records) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(velocitySeries(resp.Records, 80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption("minor (red) and major (blue) velocity"),
		))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SavePi(setup, opts, resp.Records)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

// velocitySeries samples both block velocities at up to n evenly spaced
// records.
func velocitySeries(records []collider.Record, n int) [][]float64 {
	if n > len(records) {
		n = len(records)
	}
	minor := make([]float64, n)
	major := make([]float64, n)
	for i := 0; i < n; i++ {
		r := records[i*len(records)/n]
		minor[i] = r.MinorVel
		major[i] = r.MajorVel
	}
	return [][]float64{minor, major}
}

type piRow struct {
	collisions int64
	err        error
}

func runPiTable(cmd *cobra.Command, args []string) error {
	n := 6
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("max digits %q: %w", args[0], err)
		}
		n = v
	}
	if n < 1 {
		return fmt.Errorf("max digits %d: %w", n, dynamo.ErrParameterBounds)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rows := make([]piRow, n)
	err := dynamo.ParallelFor(ctx, n, 0, func(ctx context.Context, i int) error {
		rows[i].collisions, rows[i].err = collider.CountForDigits(ctx, i+1)
		return nil
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIGITS\tRATIO\tCOLLISIONS\tOK")
	for i, r := range rows {
		d := i + 1
		if r.err != nil {
			fmt.Fprintf(w, "%d\t%g\t-\t%v\n", d, collider.MassRatioForDigits(d), r.err)
			continue
		}
		fmt.Fprintf(w, "%d\t%g\t%d\t%t\n", d, collider.MassRatioForDigits(d), r.collisions, r.collisions == collider.PiDigits(d))
	}
	return w.Flush()
}

func runPlay(cmd *cobra.Command, args []string) error {
	setup, opts, err := piScenario(cmd)
	if err != nil {
		return err
	}
	err = viz.RunPlayback(setup, opts, collider.NewWorker(logger))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
