package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravlab/internal/config"
	"github.com/san-kum/gravlab/internal/dynamo"
	"github.com/san-kum/gravlab/internal/experiment"
	"github.com/san-kum/gravlab/internal/export"
	"github.com/san-kum/gravlab/internal/gravity"
	"github.com/san-kum/gravlab/internal/metrics"
	"github.com/san-kum/gravlab/internal/scenario"
	"github.com/san-kum/gravlab/internal/storage"
	"github.com/san-kum/gravlab/internal/viz"
)

var (
	dataDir    string
	scheme     string
	dt         float64
	steps      int
	stride     int
	tolerance  float64
	maxIter    int
	gConst     float64
	configFile string
	preset     string
	save       bool
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravlab",
		Short: "n-body gravitation propagation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "propagate a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&scheme, "scheme", "leapfrog", "time integration scheme")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = scenario default)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "step count (0 = scenario default)")
	runCmd.Flags().IntVar(&stride, "stride", 0, "record every N-th step")
	runCmd.Flags().Float64Var(&gConst, "g", 0, "gravitational constant (0 = scenario default)")
	runCmd.Flags().Float64Var(&tolerance, "tol", 0, "fixed-point tolerance (implicit schemes)")
	runCmd.Flags().IntVar(&maxIter, "max-iter", 0, "fixed-point iteration cap (implicit schemes)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&save, "save", false, "persist the trajectory to the data directory")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [scheme1] [scheme2] ...",
		Short: "compare schemes on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSchemes,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = scenario default)")
	compareCmd.Flags().IntVar(&steps, "steps", 0, "step count (0 = scenario default)")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE:  listScenarios,
	}

	schemesCmd := &cobra.Command{
		Use:   "schemes",
		Short: "list time integration schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range experiment.NewRegistry().ListSchemes() {
				fmt.Println(name)
			}
			return nil
		},
	}

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

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "render run orbits to an SVG file",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "propagate with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&scheme, "scheme", "leapfrog", "time integration scheme")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = scenario default)")

	rootCmd.AddCommand(runCmd, compareCmd, scenariosCmd, schemesCmd, presetsCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves the precedence preset < config file < CLI flags.
func buildConfig(cmd *cobra.Command, scenarioName string) (experiment.Config, error) {
	cfg := experiment.Config{
		Scenario:      scenarioName,
		Scheme:        scheme,
		Dt:            dt,
		Steps:         steps,
		Stride:        stride,
		G:             gConst,
		Tolerance:     tolerance,
		MaxIterations: maxIter,
	}

	if preset != "" {
		p := config.GetPreset(scenarioName, preset)
		if p == nil {
			return cfg, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenarioName))
		}
		applyFile(cmd, &cfg, p)
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if fileCfg.Scenario != "" {
			cfg.Scenario = fileCfg.Scenario
		}
		applyFile(cmd, &cfg, fileCfg)
	}

	return cfg, nil
}

// applyFile copies file/preset values into cfg unless the matching CLI flag
// was set explicitly.
func applyFile(cmd *cobra.Command, cfg *experiment.Config, src *config.Config) {
	if !cmd.Flags().Changed("scheme") && src.Scheme != "" {
		cfg.Scheme = src.Scheme
	}
	if !cmd.Flags().Changed("dt") && src.Dt > 0 {
		cfg.Dt = src.Dt
	}
	if !cmd.Flags().Changed("steps") && src.Steps > 0 {
		cfg.Steps = src.Steps
	}
	if !cmd.Flags().Changed("stride") && src.Stride > 0 {
		cfg.Stride = src.Stride
	}
	if !cmd.Flags().Changed("g") && src.G > 0 {
		cfg.G = src.G
	}
	if !cmd.Flags().Changed("tol") && src.Tolerance > 0 {
		cfg.Tolerance = src.Tolerance
	}
	if !cmd.Flags().Changed("max-iter") && src.MaxIterations > 0 {
		cfg.MaxIterations = src.MaxIterations
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("propagating %s with %s...\n", cfg.Scenario, cfg.Scheme)
	start := time.Now()

	result, err := experiment.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", result.Traj.Len())
	tFinal, _ := result.Traj.Final()
	fmt.Printf("final time: %g\n", tFinal)
	fmt.Println()
	printReport(result.Report)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runDt := cfg.Dt
		if runDt <= 0 {
			runDt = result.Scenario.Dt
		}
		runID, err := st.Save(cfg.Scenario, cfg.Scheme, runDt, result.Traj.Len(), result.Model.Names(), result.Traj)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return nil
}

func printReport(r metrics.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tINITIAL\tMAX DRIFT\t")
	fmt.Fprintf(w, "energy\t%.6g\t%s\t\n", r.Energy.Initial, driftString(r.Energy))
	fmt.Fprintf(w, "angular momentum\t%.6g\t%s\t\n", r.AngularMomentum.Initial, driftString(r.AngularMomentum))
	fmt.Fprintf(w, "linear momentum\t%.6g\t%s\t\n", r.LinearMomentum.Initial, driftString(r.LinearMomentum))
	w.Flush()
}

func driftString(d metrics.Drift) string {
	if d.Absolute {
		return fmt.Sprintf("%.3e (abs)", d.Max)
	}
	return fmt.Sprintf("%.3e", d.Max)
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	base := experiment.Config{
		Scenario: args[0],
		Dt:       dt,
		Steps:    steps,
	}
	schemes := args[1:]

	fmt.Printf("comparing schemes on %s\n\n", base.Scenario)

	start := time.Now()
	results := experiment.Compare(context.Background(), base, schemes)
	elapsed := time.Since(start)

	fmt.Printf("%-16s  %-12s  %-12s  %-12s\n", "scheme", "energy", "ang. mom.", "lin. mom.")
	fmt.Println(strings.Repeat("-", 58))

	for _, c := range results {
		if c.Err != nil {
			fmt.Printf("%-16s  error: %v\n", c.Scheme, c.Err)
			continue
		}
		r := c.Result.Report
		fmt.Printf("%-16s  %12.3e  %12.3e  %12.3e\n",
			c.Scheme, r.Energy.Max, r.AngularMomentum.Max, r.LinearMomentum.Max)
	}

	fmt.Printf("\n%d runs in %v\n", len(results), elapsed)
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDT\tSTEPS\tDESCRIPTION")
	for _, name := range scenario.List() {
		sc, err := scenario.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%g\t%d\t%s\n", sc.Name, len(sc.Bodies), sc.Dt, sc.Steps, sc.Description)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tSCHEME\tTIME\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%d\n",
			run.ID,
			run.Scenario,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.Steps,
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

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s, scheme: %s\n", meta.Scenario, meta.Scheme)
	fmt.Printf("samples: %d\n\n", len(states))

	fmt.Println(viz.OrbitPlot(states, len(meta.Bodies), 80, 24))

	// Rebuild the model so the energy series can be recomputed from the
	// stored states.
	sc, err := scenario.Get(meta.Scenario)
	if err == nil {
		model, merr := gravity.New(sc.Bodies, sc.G)
		if merr == nil {
			traj := &dynamo.Trajectory{Times: times, States: states}
			series := metrics.EnergySeries(model, traj)
			e0 := series[0]
			drift := make([]float64, len(series))
			for i, e := range series {
				drift[i] = e - e0
				if e0 != 0 {
					drift[i] /= e0
				}
			}
			fmt.Println(viz.EnergyChart(drift, 70, 10))
		}
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no data to export")
	}

	traj := &dynamo.Trajectory{Times: times, States: states, Metrics: meta.Metrics}
	if outFile != "" {
		return storage.ExportCSV(outFile, meta.Bodies, traj)
	}
	return storage.WriteCSV(os.Stdout, meta.Bodies, traj)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID, outPath := args[0], args[1]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	svg := export.OrbitSVG(states, len(meta.Bodies), 800, 600)
	if svg == "" {
		return fmt.Errorf("not enough data to render")
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
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

	traj := &dynamo.Trajectory{Times: times, States: states, Metrics: meta.Metrics}
	if outFile != "" {
		return storage.ExportJSON(outFile, meta.Scenario, meta.Scheme, meta.Dt, meta.Bodies, traj)
	}
	return storage.WriteJSON(os.Stdout, meta.Scenario, meta.Scheme, meta.Dt, meta.Bodies, traj)
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Get(args[0])
	if err != nil {
		return err
	}

	model, err := gravity.New(sc.Bodies, sc.G)
	if err != nil {
		return err
	}

	stepper, err := experiment.NewRegistry().GetStepper(scheme)
	if err != nil {
		return err
	}

	runDt := sc.Dt
	if dt > 0 {
		runDt = dt
	}

	m := viz.NewLive(sc.Name, scheme, model, stepper, gravity.Flatten(sc.Bodies), runDt)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
