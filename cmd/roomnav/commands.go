package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/roomnav/internal/automation"
	"github.com/san-kum/roomnav/internal/config"
	"github.com/san-kum/roomnav/internal/dispatch"
	"github.com/san-kum/roomnav/internal/experiment"
	"github.com/san-kum/roomnav/internal/export"
	"github.com/san-kum/roomnav/internal/interp"
	"github.com/san-kum/roomnav/internal/logging"
	"github.com/san-kum/roomnav/internal/optim"
	"github.com/san-kum/roomnav/internal/rig"
	"github.com/san-kum/roomnav/internal/storage"
	"github.com/san-kum/roomnav/internal/tui"
	"github.com/san-kum/roomnav/internal/viz"
)

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configFile, err)
	}
	return cfg, nil
}

func initLogger(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	var outputs []string
	switch {
	case logFile != "":
		outputs = []string{logFile}
	case cmd.Name() == "roomnav" || cmd.Name() == "live":
		// stderr would tear the alt screen
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		outputs = []string{filepath.Join(dataDir, "roomnav.log")}
	}

	l, err := logging.New(level, cfg.Log.Development, outputs...)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	var names []string
	if len(metricList) > 0 {
		names = metricList
	}
	return experiment.New(cfg, experiment.NewRegistry(), names, logger)
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}
	defer exp.Close()

	m := viz.NewModel(viz.Options{
		Rig:        exp.Rig(),
		Dispatcher: exp.Dispatcher(),
		Onboarding: exp.Onboarding(),
		FrameTime:  cfg.FrameTime(),
		Layout:     cfg.Layout,
		Theme:      theme,
	})

	logger.Info("viewer started", zap.String("layout", cfg.Layout), zap.Int("fps", cfg.Frame.FPS))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("viewer stopped", zap.Int64("changes", exp.Store().Changes()))
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fps > 0 {
		cfg.Frame.FPS = fps
	}
	if timeScaled {
		cfg.Damping.Mode = interp.ModeTimeScaled
	}

	cues, err := rig.ParseScript(script)
	if err != nil {
		return err
	}

	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}
	defer exp.Close()

	out := cmd.OutOrStdout()
	if liveEvery > 0 {
		exp.Rig().AddObserver(tui.NewLiveRenderer(out, liveEvery))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "running %d frames at %d fps (%s damping)...\n", frames, cfg.Frame.FPS, cfg.Damping.Mode)
	start := time.Now()
	result, err := exp.Run(ctx, cues, frames)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	final, _ := result.Final()
	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "final target: %s\n", final.Target)
	fmt.Fprintf(out, "final distance: %.6f\n", final.Distance)
	if len(result.Ignored) > 0 {
		fmt.Fprintf(out, "ignored cues: %s\n", strings.Join(result.Ignored, ", "))
	}

	fmt.Fprintln(out, "\nmetrics:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Layout:    cfg.Layout,
		Script:    cues.String(),
		FrameTime: cfg.FrameTime().Seconds(),
		Damping:   cfg.Damping.Mode,
		Alpha:     cfg.Damping.Alpha,
		Ignored:   result.Ignored,
		Metrics:   result.Metrics,
	}, result.Frames)
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("run_id", runID), zap.Int("frames", len(result.Frames)))
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}
	cues, err := rig.ParseScript(sweepScript)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	build := func(mode string, alpha float64) (*experiment.Experiment, error) {
		cfg := *base
		cfg.Onboarding = false
		cfg.Damping.Mode = mode
		cfg.Damping.Alpha = alpha
		return experiment.New(&cfg, reg, nil, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch(sweepModes, sweepAlphas)
	best, trials, err := g.Search(ctx, build, cues, sweepFrames, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "MODE\tALPHA\t%s\tFINAL DISTANCE\n", strings.ToUpper(sweepMetric))
	for _, t := range trials {
		if t.Err != nil {
			fmt.Fprintf(w, "%s\t%.3f\terror: %v\t\n", t.Mode, t.Alpha, t.Err)
			continue
		}
		mark := ""
		if t.Mode == best.Mode && t.Alpha == best.Alpha {
			mark = " *"
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.4f%s\t%.6f\n", t.Mode, t.Alpha, t.Metrics[sweepMetric], mark, t.Metrics["final_distance"])
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scenario.Description != "" {
		fmt.Fprintf(out, "%s: %s\n", scenario.Name, scenario.Description)
	}
	results, err := automation.RunScenario(cmd.Context(), scenario, base, experiment.NewRegistry(), out)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tFRAMES\tFINAL\tDISTANCE\tSETTLE\tIGNORED")
	for _, r := range results {
		final, _ := r.Result.Final()
		fmt.Fprintf(w, "%s\t%d\t%s\t%.6f\t%.0f\t%d\n",
			r.Step.Name, len(r.Result.Frames), final.Target, final.Distance,
			r.Result.Metrics["settle_frames"], len(r.Result.Ignored))
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}

	actions := make([]string, 0)
	for _, b := range dispatch.DefaultBindings() {
		actions = append(actions, b.Action)
	}
	cfg := &automation.MonteCarloConfig{
		Trials:  mcTrials,
		Cues:    mcCues,
		Frames:  mcFrames,
		Seed:    mcSeed,
		Actions: actions,
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), cfg, base, experiment.NewRegistry())
	if err != nil {
		return err
	}

	settled, unsettled := automation.MonteCarloStats(results)
	worst := 0.0
	for _, r := range results {
		if r.FinalDistance > worst {
			worst = r.FinalDistance
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed: %d\n", mcSeed)
	fmt.Fprintf(out, "trials: %d  settled: %d  unsettled: %d\n", len(results), settled, unsettled)
	fmt.Fprintf(out, "worst final distance: %.6f\n", worst)
	return nil
}

func listTargets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET\tPOSITION\tLOOK AT")
	for _, id := range reg.Targets() {
		p := reg.MustLookup(id)
		fmt.Fprintf(w, "%s\t(%.2f, %.2f, %.2f)\t(%.2f, %.2f, %.2f)\n", id,
			p.Position.X, p.Position.Y, p.Position.Z,
			p.LookAt.X, p.LookAt.Y, p.LookAt.Z)
	}
	return w.Flush()
}

func listBindings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	exp, err := newExperiment(cfg)
	if err != nil {
		return err
	}
	defer exp.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tSOURCE\tTRIGGER\tTARGET")
	for _, b := range exp.Dispatcher().Bindings() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Action, b.Source, b.Trigger, b.Target)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAYOUT\tTIME\tFRAMES\tDAMPING\tFINAL\tSCRIPT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			run.ID,
			run.Layout,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Damping,
			run.FinalTarget,
			run.Script,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "script: %s\n", meta.Script)
	fmt.Fprintf(out, "frames: %d\n\n", len(frames))

	graph := asciigraph.Plot(storage.Distances(frames),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("distance to target"),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch exportFormat {
	case "json":
		return storage.ExportJSON(w, *meta, frames)
	case "svg":
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Layout != meta.Layout && len(cfg.Targets) == 0 {
			cfg.Layout = meta.Layout
		}
		reg, err := cfg.Registry()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, export.PathToSVG(frames, reg, 800, 600))
		return err
	default:
		return fmt.Errorf("unknown export format: %s (want json or svg)", exportFormat)
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "roomnav.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.DefaultConfig()
	cfg.Targets = make(map[string]config.PoseConfig)
	for id, pose := range config.GetPreset(cfg.Layout) {
		cfg.Targets[string(id)] = config.FromPose(pose)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "layouts:")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(out, "  %s (%d targets)\n", name, len(config.GetPreset(name)))
	}
	return nil
}
