package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/longsim/internal/analysis"
	"github.com/san-kum/longsim/internal/config"
	"github.com/san-kum/longsim/internal/metrics"
	"github.com/san-kum/longsim/internal/profile"
	"github.com/san-kum/longsim/internal/sim"
	"github.com/san-kum/longsim/internal/store"
	"github.com/san-kum/longsim/internal/vehicle"
	"github.com/san-kum/longsim/internal/viz"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	profileName string
	throttle    float64
	grade       float64
	configFile  string
	preset      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "longsim",
		Short: "longitudinal vehicle simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".longsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

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
		Short: "trajectory diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&profileName, "profile", "ramp", "driving profile (constant, ramp, schedule)")
	cmd.Flags().Float64Var(&throttle, "throttle", config.DefaultThrottle, "throttle (constant profile)")
	cmd.Flags().Float64Var(&grade, "grade", 0.0, "grade angle in radians (constant profile)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildScenario resolves preset, config file, and flags (in increasing
// precedence) into a model and profile ready to run.
func buildScenario(cmd *cobra.Command) (*config.Config, *vehicle.Model, sim.Profile, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = profileName
	}
	if cmd.Flags().Changed("throttle") {
		cfg.Throttle = throttle
	}
	if cmd.Flags().Changed("grade") {
		cfg.Grade = grade
	}

	veh, err := vehicle.NewValidated(cfg.VehicleParams())
	if err != nil {
		return nil, nil, nil, err
	}

	prof, err := profile.FromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, veh, prof, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, veh, prof, err := buildScenario(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(veh, prof)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s profile...\n", cfg.Profile)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{
		Duration:      cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Profile, veh.Params.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tTIME\tDURATION\tDT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Profile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	if len(result.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("profile: %s\n", meta.Profile)
	fmt.Printf("samples: %d\n\n", len(result.Times))

	traces := []struct {
		caption string
		data    []float64
	}{
		{"position (m)", result.Positions},
		{"velocity (m/s)", result.Velocities},
		{"acceleration (m/s²)", result.Accelerations},
		{"engine speed (rad/s)", result.EngineSpeeds},
		{"throttle", result.Throttles},
	}

	for _, tr := range traces {
		graph := asciigraph.Plot(tr.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(tr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	if len(result.Velocities) < 2 {
		return fmt.Errorf("not enough data to analyze")
	}

	fmt.Printf("terminal velocity: %.4f m/s\n", analysis.TerminalVelocity(result.Velocities, 100))
	fmt.Printf("peak velocity: %.4f m/s\n", analysis.Peak(result.Velocities))
	fmt.Printf("max velocity delta: %.6f m/s\n", analysis.MaxDelta(result.Velocities))

	if idx := analysis.SettlingIndex(result.Velocities, 1e-4); idx >= 0 {
		fmt.Printf("settles at t=%.2fs (sample %d)\n", result.Times[idx], idx)
	} else {
		fmt.Println("velocity does not settle within the run")
	}

	if analysis.NonDecreasing(result.Positions) {
		fmt.Println("position: monotonic forward motion")
	} else {
		fmt.Println("position: moves backward at some point")
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	return store.WriteCSV(w, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, meta, result)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, veh, prof, err := buildScenario(cmd)
	if err != nil {
		return err
	}

	return viz.Run(veh, prof, cfg.Profile)
}
