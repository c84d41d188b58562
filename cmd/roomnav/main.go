package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFile    string

	// run
	script     string
	frames     int
	fps        int
	timeScaled bool
	metricList []string
	liveEvery  int
	noSave     bool

	// live
	theme string

	// sweep
	sweepScript string
	sweepFrames int
	sweepAlphas []float64
	sweepModes  []string
	sweepMetric string

	// montecarlo
	mcTrials int
	mcCues   int
	mcFrames int
	mcSeed   int64

	// export
	exportFormat string
	exportOut    string

	logger = zap.NewNop()
)

// main is the entry point for the roomnav CLI. With no subcommand it opens the
// live viewer.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "roomnav",
		Short:             "camera navigation for a 3d room",
		SilenceUsage:      true,
		RunE:              runViewer,
		PersistentPreRunE: initLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".roomnav", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.Flags().StringVar(&theme, "theme", "studio", "color theme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "open the live room viewer",
		RunE:  runViewer,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "studio", "color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play a navigation script headlessly and save the run",
		RunE:  runScript,
	}
	runCmd.Flags().StringVar(&script, "script", "", "cues as action@frame, comma separated")
	runCmd.Flags().IntVar(&frames, "frames", 240, "frames to simulate")
	runCmd.Flags().IntVar(&fps, "fps", 0, "frame rate (overrides config)")
	runCmd.Flags().BoolVar(&timeScaled, "time-scaled", false, "scale damping by frame time")
	runCmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to record (default all)")
	runCmd.Flags().IntVar(&liveEvery, "live", 0, "print a status line every N frames")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare damping settings on one script",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepScript, "script", "open-left-monitor@0", "cues as action@frame, comma separated")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 240, "frames per trial")
	sweepCmd.Flags().Float64SliceVar(&sweepAlphas, "alphas", []float64{0.02, 0.05, 0.1, 0.2}, "damping factors to try")
	sweepCmd.Flags().StringSliceVar(&sweepModes, "modes", []string{"fixed"}, "damping modes to try")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "settle_frames", "metric to minimize")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "play random cue sequences and report convergence",
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&mcTrials, "trials", 50, "number of random scripts")
	monteCarloCmd.Flags().IntVar(&mcCues, "cues", 8, "cues per script")
	monteCarloCmd.Flags().IntVar(&mcFrames, "frames", 600, "frames per script")
	monteCarloCmd.Flags().Int64Var(&mcSeed, "seed", time.Now().UnixNano(), "random seed")

	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "list registered targets and their poses",
		RunE:  listTargets,
	}

	bindingsCmd := &cobra.Command{
		Use:   "bindings",
		Short: "list the dispatch table",
		RunE:  listBindings,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance to target over a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or svg")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list room layouts",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, runCmd, sweepCmd, scenarioCmd, monteCarloCmd, targetsCmd, bindingsCmd, listCmd, plotCmd, exportCmd, configCmd, presetsCmd)
	return rootCmd
}
