package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kselvik/springsim/internal/config"
	"github.com/kselvik/springsim/internal/gui"
	"github.com/kselvik/springsim/internal/oscillator"
	"github.com/kselvik/springsim/internal/solver"
	"github.com/kselvik/springsim/internal/storage"
	"github.com/kselvik/springsim/internal/viz"
)

var (
	dataDir    string
	configFile string

	damping   float64
	stiffness float64
	mass      float64
	forcing   float64
	pos       float64
	vel       float64
	method    string
	absTol    float64
	relTol    float64
	duration  float64
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "springsim",
		Short: "damped mass-spring oscillator visualizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springsim", "data directory")
	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&damping, "damping", oscillator.DefaultDamping, "damping coefficient c")
		cmd.Flags().Float64Var(&stiffness, "stiffness", oscillator.DefaultStiffness, "spring stiffness k")
		cmd.Flags().Float64Var(&mass, "mass", oscillator.DefaultMass, "mass M")
		cmd.Flags().Float64Var(&forcing, "forcing", oscillator.DefaultForcing, "constant forcing F")
		cmd.Flags().Float64Var(&pos, "pos", config.DefaultPosition, "initial position")
		cmd.Flags().Float64Var(&vel, "vel", config.DefaultVelocity, "initial velocity")
		cmd.Flags().StringVar(&method, "method", string(solver.MethodRK1Imp), "integration method (rk45, rk1imp)")
		cmd.Flags().Float64Var(&absTol, "abstol", 1e-6, "absolute tolerance")
		cmd.Flags().Float64Var(&relTol, "reltol", 1e-6, "relative tolerance")
		cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
		cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate / samples per second")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	}
	addSimFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record the trajectory",
		RunE:  runHeadless,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
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
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0])
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig merges defaults, an optional config file, and explicit
// flags. Flags set on the command line override the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("stiffness") {
		cfg.Stiffness = stiffness
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("forcing") {
		cfg.Forcing = forcing
	}
	if flags.Changed("pos") {
		cfg.InitState.Position = pos
	}
	if flags.Changed("vel") {
		cfg.InitState.Velocity = vel
	}
	if flags.Changed("method") {
		cfg.Integrator.Method = method
	}
	if flags.Changed("abstol") {
		cfg.Integrator.AbsTol = absTol
	}
	if flags.Changed("reltol") {
		cfg.Integrator.RelTol = relTol
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	osc, err := oscillator.New(cfg.Params())
	if err != nil {
		return err
	}
	driver, err := solver.NewDriver(osc, cfg.SolverConfig(), 0, cfg.InitialState())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	steps := int(cfg.Duration * float64(cfg.FPS))
	dt := 1.0 / float64(cfg.FPS)
	samples := make([]storage.Sample, 0, steps+1)

	y0 := cfg.InitialState()
	samples = append(samples, storage.Sample{T: 0, Position: y0[0], Velocity: y0[1], Energy: osc.Energy(y0)})

	fmt.Println("running simulation...")
	start := time.Now()

	for i := 1; i <= steps; i++ {
		t := float64(i) * dt
		y, err := driver.Advance(t)
		if err != nil {
			return fmt.Errorf("integration failed at t=%.3f: %w", t, err)
		}
		samples = append(samples, storage.Sample{T: t, Position: y[0], Velocity: y[1], Energy: osc.Energy(y)})
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Damping:   cfg.Damping,
		Stiffness: cfg.Stiffness,
		Mass:      cfg.Mass,
		Forcing:   cfg.Forcing,
		Method:    cfg.Integrator.Method,
		AbsTol:    cfg.Integrator.AbsTol,
		RelTol:    cfg.Integrator.RelTol,
		Duration:  cfg.Duration,
		FPS:       cfg.FPS,
	}, samples)
	if err != nil {
		return err
	}

	stats := driver.Stats()
	final := samples[len(samples)-1]
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(samples))
	fmt.Printf("steps: %d  rejected: %d  evaluations: %d\n", stats.Steps, stats.Rejected, stats.Evaluations)
	fmt.Printf("final position: %.6f (steady state %.6f)\n", final.Position, osc.SteadyState()[0])

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tMETHOD\tC\tK\tM\tF")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1fs\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Method,
			run.Damping,
			run.Stiffness,
			run.Mass,
			run.Forcing,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	positions := make([]float64, len(samples))
	velocities := make([]float64, len(samples))
	for i, s := range samples {
		positions[i] = s.Position
		velocities[i] = s.Velocity
	}

	fmt.Println(asciigraph.Plot(positions,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("position"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(velocities,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("velocity"),
	))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	samples, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "velocity", "energy"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.T, 'f', 6, 64),
			strconv.FormatFloat(s.Position, 'f', 6, 64),
			strconv.FormatFloat(s.Velocity, 'f', 6, 64),
			strconv.FormatFloat(s.Energy, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
