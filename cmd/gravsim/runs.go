package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fynnbrem/homepage/internal/export"
	"github.com/fynnbrem/homepage/internal/sim"
	"github.com/fynnbrem/homepage/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tNAME\tTIME\tDETAIL")

	for _, run := range runs {
		var detail string
		switch run.Kind {
		case storage.KindArena:
			detail = fmt.Sprintf("%d ticks, %d balls, %d contacts", run.Ticks, len(run.Balls), run.Contacts)
		case storage.KindPi:
			detail = fmt.Sprintf("%d digits, %d collisions, %d records", run.Digits, run.Collisions, run.Records)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			detail,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if output == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}
	if err := st.ExportJSONFile(output, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", output)
	return nil
}

// exportSVG renders a stored run, or with no run id the final state of a
// fresh scenario run.
func exportSVG(cmd *cobra.Command, args []string) error {
	var svg string
	var err error
	if len(args) == 1 {
		svg, err = storedSVG(args[0])
	} else {
		svg, err = scenarioSVG(cmd)
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err := io.WriteString(os.Stdout, svg+"\n")
		return err
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", output)
	return nil
}

func storedSVG(runID string) (string, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return "", err
	}
	if meta.Kind == storage.KindPi {
		if meta.Blocks == nil {
			return "", fmt.Errorf("run %s has no block config", runID)
		}
		records, err := st.LoadRecords(runID)
		if err != nil {
			return "", err
		}
		return export.RecordsToSVG(*meta.Blocks, records, svgSize), nil
	}
	arena, err := st.LoadArena(runID)
	if err != nil {
		return "", err
	}
	return export.ArenaToSVG(arena), nil
}

func scenarioSVG(cmd *cobra.Command) (string, error) {
	s, err := loadScenario(cmd)
	if err != nil {
		return "", err
	}
	arena, world, err := s.Build()
	if err != nil {
		return "", err
	}
	result, err := sim.New(arena, world).Run(context.Background(), s.SimConfig())
	if err != nil {
		return "", err
	}
	return export.ArenaToSVG(result.Final), nil
}
