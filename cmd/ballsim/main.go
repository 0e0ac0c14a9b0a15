package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/bench"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/logging"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/render"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
	"github.com/san-kum/ballsim/internal/timing"
	"github.com/san-kum/ballsim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	preset        string
	configFile    string
	gravity       float64
	dt            float64
	restitution   float64
	restThreshold float64
	y0            float64
	vy0           float64
	steps         int
	stride        int

	color        bool
	keepEvery    int
	sumN         int
	frameRate    int
	stepsPerTick int
	svgWidth     int
	svgHeight    int
	svgStroke    string
)

// main wires the cobra command tree and exits with status 1 on any error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ballsim",
		Short: "bouncing ball simulation and timing lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, os.Stderr)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ballsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (info, debug, trace)")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "print the ascii animation",
		RunE:  animate,
	}
	addBallFlags(animateCmd)
	animateCmd.Flags().IntVar(&stride, "stride", render.DefaultStride, "render every n-th step")
	animateCmd.Flags().BoolVar(&color, "color", false, "style the ball glyph")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and save it",
		RunE:  runSimulation,
	}
	addBallFlags(runCmd)
	runCmd.Flags().IntVar(&keepEvery, "keep", 1, "record every n-th sample")

	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "time a long step loop",
		RunE:  stress,
	}
	addBallFlags(stressCmd)

	sumCmd := &cobra.Command{
		Use:   "sum",
		Short: "time an integer sum",
		RunE:  sum,
	}
	sumCmd.Flags().IntVar(&sumN, "n", bench.DefaultSumN, "number of integers to add")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export height trace to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", export.DefaultWidth, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", export.DefaultHeight, "image height")
	exportSVGCmd.Flags().StringVar(&svgStroke, "stroke", export.DefaultStroke, "trace color")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePresets(cmd.OutOrStdout())
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	addBallFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-tick", 1, "steps per frame")

	rootCmd.AddCommand(animateCmd, runCmd, stressCmd, sumCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, presetsCmd, liveCmd)
	return rootCmd
}

func addBallFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&gravity, "gravity", def.Gravity, "gravity")
	cmd.Flags().Float64Var(&dt, "dt", def.Dt, "timestep")
	cmd.Flags().Float64Var(&restitution, "restitution", def.Restitution, "coefficient of restitution")
	cmd.Flags().Float64Var(&restThreshold, "rest-threshold", def.RestThreshold, "rest clamp threshold, 0 disables")
	cmd.Flags().Float64Var(&y0, "y", def.InitState.Y, "initial height")
	cmd.Flags().Float64Var(&vy0, "vy", def.InitState.VY, "initial velocity")
	cmd.Flags().IntVar(&steps, "steps", def.Steps, "number of steps")
}

// resolveConfig applies the preset, then the config file, then any flag
// set on the command line. fallback names the preset used when neither
// --preset nor --config is given.
func resolveConfig(cmd *cobra.Command, fallback string) (*config.Config, error) {
	name := preset
	if name == "" && configFile == "" {
		name = fallback
	}

	cfg := config.DefaultConfig()
	if name != "" {
		p, err := config.MustPreset(name)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("restitution") {
		cfg.Restitution = restitution
	}
	if flags.Changed("rest-threshold") {
		cfg.RestThreshold = restThreshold
	}
	if flags.Changed("y") {
		cfg.InitState.Y = y0
	}
	if flags.Changed("vy") {
		cfg.InitState.VY = vy0
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Lookup("stride") != nil && flags.Changed("stride") {
		cfg.Render.Stride = stride
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved",
		"scenario", cfg.Scenario,
		"gravity", cfg.Gravity,
		"dt", cfg.Dt,
		"restitution", cfg.Restitution,
		"rest_threshold", cfg.RestThreshold,
		"y0", cfg.InitState.Y,
		"vy0", cfg.InitState.VY,
		"steps", cfg.Steps,
	)
	return cfg, nil
}

func animate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "animation")
	if err != nil {
		return err
	}
	ball, err := cfg.NewBall()
	if err != nil {
		return err
	}

	opts := []render.Option{
		render.WithStride(cfg.Render.Stride),
		render.WithGlyph(cfg.Glyph()),
	}
	if color {
		opts = append(opts, render.WithStyle(viz.BallStyle()))
	}

	rows, err := render.NewAnimator(cmd.OutOrStdout(), opts...).Animate(ball.Run(cfg.Steps))
	if err != nil {
		return err
	}
	logger.Debug("animation finished", "rows", rows, "steps", ball.Steps())
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "animation")
	if err != nil {
		return err
	}
	ball, err := cfg.NewBall()
	if err != nil {
		return err
	}

	st := storage.New(dataDir).WithLogger(logger)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(logger)
	for _, m := range metrics.Defaults(ball, cfg.Gravity) {
		runner.AddMetric(m)
	}

	opts := sim.DefaultOptions()
	opts.Steps = cfg.Steps
	opts.KeepEvery = keepEvery

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s simulation...\n", cfg.Scenario)
	timer := timing.NewTimer(nil)
	timer.Start()

	result, err := runner.Run(ctx, ball, opts)
	if err != nil && !errors.Is(err, dynamo.ErrCanceled) {
		return err
	}
	if err != nil {
		logger.Warn("saving partial run", "steps_taken", result.StepsTaken)
	}
	elapsed := timer.Stop()

	runID, saveErr := st.Save(cfg, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Fprintf(out, "completed in %.3fs\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "bounces: %d\n", result.Bounces)
	fmt.Fprintf(out, "first contact: %d\n", result.FirstContact)
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}

	return err
}

func stress(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "stress")
	if err != nil {
		return err
	}
	ball, err := cfg.NewBall()
	if err != nil {
		return err
	}

	logger.Info("stress starting", "steps", cfg.Steps)
	report := bench.Stress(ball, cfg.Steps, timing.WallClock{})
	return bench.WriteTable(cmd.OutOrStdout(), report)
}

func sum(cmd *cobra.Command, args []string) error {
	if sumN < 0 {
		return fmt.Errorf("%w: n must be non-negative, got %d", dynamo.ErrInvalidConfig, sumN)
	}
	report := bench.Sum(sumN, timing.WallClock{})
	return bench.WriteTable(cmd.OutOrStdout(), report)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir).WithLogger(logger)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tDT\tE\tBOUNCES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%.2f\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Restitution,
			run.Bounces,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Sample, error) {
	st := storage.New(dataDir).WithLogger(logger)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("%w: run %s", dynamo.ErrNoData, runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "scenario: %s\n", meta.Scenario)
	fmt.Fprintf(out, "samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		data    []float64
	}{
		{"height (y)", analysis.Heights(samples)},
		{"velocity (vy)", analysis.Velocities(samples)},
	}
	for _, s := range series {
		if len(s.data) < 2 {
			continue
		}
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "scenario: %s\n\n", meta.Scenario)

	// recorded samples may be thinned, so the spacing comes from the data
	sampleDt := meta.Dt
	if len(samples) >= 2 {
		sampleDt = samples[1].Time - samples[0].Time
	}

	heights := analysis.Heights(samples)
	ps := analysis.Spectrum(heights)
	if len(ps) >= 2 {
		plotData := ps[:max(len(ps)/4, 2)]
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("height spectrum"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "bounces: %d\n", meta.Bounces)
	fmt.Fprintf(out, "first contact: %d\n", meta.FirstContact)

	intervals := analysis.BounceIntervals(samples)
	if len(intervals) > 0 {
		total := 0
		for _, iv := range intervals {
			total += iv
		}
		mean := float64(total) / float64(len(intervals))
		fmt.Fprintf(out, "bounce intervals: %v\n", intervals)
		fmt.Fprintf(out, "mean interval: %.2f steps (%.3f s)\n", mean, mean*meta.Dt)
	}

	freq := analysis.DominantFrequency(heights, sampleDt)
	fmt.Fprintf(out, "dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(out, "period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.TraceSVG(cmd.OutOrStdout(), samples, svgWidth, svgHeight, svgStroke)
}

func writePresets(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGRAVITY\tDT\tE\tTHRESHOLD\tY0\tVY0\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%d\n",
			name, p.Gravity, p.Dt, p.Restitution, p.RestThreshold, p.InitState.Y, p.InitState.VY, p.Steps)
	}
	return tw.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "animation")
	if err != nil {
		return err
	}
	ball, err := cfg.NewBall()
	if err != nil {
		return err
	}

	return viz.Run(ball, viz.LiveOptions{
		FPS:          frameRate,
		StepsPerTick: stepsPerTick,
		MaxSteps:     cfg.Steps,
		Glyph:        cfg.Glyph(),
	})
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
