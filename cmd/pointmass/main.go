package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pointmass/internal/analysis"
	"github.com/san-kum/pointmass/internal/config"
	"github.com/san-kum/pointmass/internal/scenario"
	"github.com/san-kum/pointmass/internal/storage"
	"github.com/san-kum/pointmass/internal/tui"
	"github.com/san-kum/pointmass/internal/viz"
	"github.com/san-kum/pointmass/internal/world"
)

var (
	dataDir       string
	dt            float64
	duration      float64
	integrator    string
	substeps      int
	workers       int
	mass          float64
	damping       float64
	pos           float64
	vel           float64
	configFile    string
	preset        string
	comparePreset string
	xAxis         int
	yAxis         int
	svgXAxis      int
	svgYAxis      int
	outFile       string
	svgScale      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pointmass",
		Short: "point-mass physics simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pointmass", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")
	runCmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "euler substeps per step")
	runCmd.Flags().IntVar(&workers, "workers", 0, "parallel component workers")
	runCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	runCmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "velocity damping per second")
	runCmd.Flags().Float64Var(&pos, "pos", 0, "initial height (y position)")
	runCmd.Flags().Float64Var(&vel, "vel", 0, "initial forward speed (x velocity)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

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

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 1, "state column for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 4, "state column for y-axis")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 4.0, "dot scale")
	exportSVGCmd.Flags().IntVar(&svgXAxis, "x-axis", 0, "state column for x-axis")
	exportSVGCmd.Flags().IntVar(&svgYAxis, "y-axis", 1, "state column for y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	compareCmd.Flags().StringVar(&comparePreset, "preset", "standard", "preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&duration, "time", 30.0, "duration")
	liveCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&workers, "workers", 0, "parallel component workers")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCmd, exportJSONCmd,
		exportCSVCmd, exportSVGCmd, analyzeCmd, benchCmd, compareCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file, and explicit flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = name

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Scenario = name
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("substeps") {
		cfg.Substeps = substeps
	}
	if cmd.Flags().Changed("mass") {
		cfg.InitState.Mass = mass
	}
	if cmd.Flags().Changed("damping") {
		cfg.InitState.Damping = damping
	}
	if cmd.Flags().Changed("pos") {
		cfg.InitState.Y = pos
	}
	if cmd.Flags().Changed("vel") {
		cfg.InitState.VX = vel
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	w, err := registry.Build(cfg)
	if err != nil {
		return err
	}
	for _, m := range registry.DefaultMetrics() {
		w.AddMetric(m)
	}

	fmt.Printf("running %s simulation...\n", cfg.Scenario)
	start := time.Now()

	result, err := w.Run(context.Background(), world.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Workers:  workers,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scenario, cfg.Dt, cfg.Duration, cfg.Integrator, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.States))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
		)
	}

	return w.Flush()
}

var stateCaptions = []string{"x position", "y position", "z position", "x velocity", "y velocity", "z velocity"}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		caption := fmt.Sprintf("x%d vs time", varIdx)
		if varIdx < len(stateCaptions) {
			caption = stateCaptions[varIdx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)

	portrait := analysis.PhaseFromResult(&world.Result{Times: times, States: states}, xAxis, yAxis)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// loadResult rebuilds a Result from a stored run for the export paths.
func loadResult(st *storage.Store, runID string) (*storage.RunMetadata, *world.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}

	return meta, &world.Result{
		Times:   times,
		States:  states,
		Metrics: meta.Metrics,
	}, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := loadResult(st, args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta.Scenario, meta.Integrator, meta.Dt, meta.Duration, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := loadResult(st, args[0])
	if err != nil {
		return err
	}

	if len(result.States) == 0 {
		return fmt.Errorf("no data to export")
	}

	if outFile != "" {
		return storage.ExportCSV(outFile, result)
	}
	return storage.WriteCSV(os.Stdout, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	_, result, err := loadResult(st, runID)
	if err != nil {
		return err
	}

	canvas := viz.TrajectoryCanvas(result, svgXAxis, svgYAxis, 80, 24)
	if canvas == nil {
		return fmt.Errorf("no data to export")
	}

	svg := viz.CanvasToSVG(canvas, svgScale)

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][0]
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := scenario.NewRegistry()

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{1.0 / 240, 1.0 / 60, 1.0 / 30}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			cfg := config.GetPreset(name, "standard")
			if cfg == nil {
				return fmt.Errorf("no standard preset for scenario: %s", name)
			}
			cfg.Dt = step
			cfg.Duration = dur

			wld, err := registry.Build(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := wld.Run(context.Background(), world.Config{Dt: step, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := len(result.States)
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	name := args[0]
	names := args[1:]

	registry := scenario.NewRegistry()

	base := config.GetPreset(name, comparePreset)
	if base == nil {
		return fmt.Errorf("no preset %s for scenario: %s", comparePreset, name)
	}
	if cmd.Flags().Changed("dt") {
		base.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		base.Duration = duration
	}

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", name, base.Dt, base.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_X0\tPEAK_SPEED\tTIME_MS")

	for _, intName := range names {
		cfg := *base
		cfg.Integrator = intName

		wld, err := registry.Build(&cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", intName, err)
			continue
		}
		for _, m := range registry.DefaultMetrics() {
			wld.AddMetric(m)
		}

		start := time.Now()
		result, err := wld.Run(context.Background(), world.Config{Dt: cfg.Dt, Duration: cfg.Duration})
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", intName, err)
			continue
		}

		finalX0 := 0.0
		if len(result.States) > 0 && len(result.States[len(result.States)-1]) > 0 {
			finalX0 = result.States[len(result.States)-1][0]
		}

		fmt.Fprintf(w, "%s\t%.6f\t%.4f\t%.2f\n",
			intName, finalX0, result.Metrics["peak_speed"], float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	build := func() (*world.World, error) {
		wld, err := registry.Build(cfg)
		if err != nil {
			return nil, err
		}
		if workers > 0 {
			wld.SetWorkers(workers)
		}
		return wld, nil
	}

	return tui.Run(cfg.Scenario, build, cfg.Dt, cfg.Duration)
}
