package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fynnbrem/homepage/internal/config"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	ticks      int
	tickRate   float64
	random     int
	seed       int64
	gravity    float64
	trail      int
	digits     int
	squash     float64
	transform  float64
	maxEvents  int64
	save       bool
	realtime   bool
	output     string
	sweepParam string
	sweepVals  []float64
	svgSize    int

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "gravsim"})
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gravsim",
		Short:        "gravity ball arena and pi block collider",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(lvl)
			log.SetDefault(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	arenaCmd := &cobra.Command{
		Use:   "arena",
		Short: "run the arena headless",
		RunE:  runArena,
	}
	scenarioFlags(arenaCmd)
	arenaCmd.Flags().BoolVar(&save, "save", false, "store the run")
	arenaCmd.Flags().BoolVar(&realtime, "realtime", false, "pace ticks at the tick rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "open the interactive arena",
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the arena once per value of a world parameter",
		RunE:  runSweep,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gravity_scaling", "world parameter to vary")
	sweepCmd.Flags().Float64SliceVar(&sweepVals, "values", nil, "comma separated parameter values")

	piCmd := &cobra.Command{
		Use:   "pi",
		Short: "count block collisions for a number of digits",
		RunE:  runPi,
	}
	piFlags(piCmd)
	piCmd.Flags().BoolVar(&save, "save", false, "store the run")

	piTableCmd := &cobra.Command{
		Use:   "pi-table [max-digits]",
		Short: "count collisions for 1..n digits in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPiTable,
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "watch the blocks collide",
		RunE:  runPlay,
	}
	piFlags(playCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored pi run, or the arena after a scenario run, as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	scenarioFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 600, "phase chart size in pixels")

	rootCmd.AddCommand(arenaCmd, liveCmd, sweepCmd, piCmd, piTableCmd, playCmd, presetsCmd, listCmd, exportCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "scenario file (yaml or toml)")
	f.StringVar(&preset, "preset", "", "built-in scenario")
	f.IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	f.Float64Var(&tickRate, "rate", 60, "ticks per second")
	f.IntVar(&random, "random", 0, "extra random balls")
	f.Int64Var(&seed, "seed", 0, "seed for random balls")
	f.Float64Var(&gravity, "gravity", 0, "world gravity magnitude")
	f.IntVar(&trail, "trail", 0, "trail length")
}

func piFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "scenario file (yaml or toml)")
	f.IntVarP(&digits, "digits", "d", config.DefaultPiDigits, "digits of pi")
	f.Float64Var(&squash, "squash", 0, "minimum time between records")
	f.Float64Var(&transform, "transform", 0, "time compression level")
	f.Int64Var(&maxEvents, "max-events", 0, "collision budget (0 for the default)")
}

// loadScenario resolves preset, then file, then flags. Only flags given on
// the command line override earlier values.
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	s := config.Default()
	var err error
	if preset != "" {
		if s, err = config.GetPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if configFile != "" {
		if s, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		s.Tick.Ticks = ticks
	}
	if flags.Changed("rate") {
		s.Tick.Rate = tickRate
	}
	if flags.Changed("random") {
		s.Random.Count = random
	}
	if flags.Changed("seed") {
		s.Random.Seed = seed
	}
	if flags.Changed("gravity") {
		s.World.WorldGravity.Magnitude = gravity
	}
	if flags.Changed("trail") {
		s.World.TrailLength = trail
	}
	if flags.Changed("digits") {
		s.Pi.Digits = digits
	}
	if flags.Changed("squash") {
		s.Pi.SquashInterval = squash
	}
	if flags.Changed("transform") {
		s.Pi.TransformLevel = transform
	}
	if flags.Changed("max-events") {
		s.Pi.MaxEvents = maxEvents
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("scenario", "name", s.Name, "balls", len(s.Balls), "random", s.Random.Count, "ticks", s.Tick.Ticks)
	return s, nil
}
