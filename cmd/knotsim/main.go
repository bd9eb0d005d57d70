package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/hwen/knotsim/internal/analysis"
	"github.com/hwen/knotsim/internal/config"
	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/gui"
	"github.com/hwen/knotsim/internal/knot"
	"github.com/hwen/knotsim/internal/metrics"
	"github.com/hwen/knotsim/internal/portal"
	"github.com/hwen/knotsim/internal/sim"
	"github.com/hwen/knotsim/internal/storage"
	"github.com/hwen/knotsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	configFile string

	// travel flags
	fromFlag  string
	toFlag    string
	worldFlag int

	// analysis flags
	entityIdx int

	// gui flags
	withAudio bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "knotsim",
		Short: "travel simulator for worlds glued along a trefoil membrane",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the GUI with the demo scene.
			cfg := config.GetPreset("demo")
			if err := gui.Run(cfg, false); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".knotsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	travelCmd := &cobra.Command{
		Use:   "travel",
		Short: "resolve a single segment's world transition",
		RunE:  travelSegment,
	}
	travelCmd.Flags().StringVar(&fromFlag, "from", "", "segment start x,y,z")
	travelCmd.Flags().StringVar(&toFlag, "to", "", "segment end x,y,z")
	travelCmd.Flags().IntVar(&worldFlag, "world", 0, "starting world index")
	travelCmd.MarkFlagRequired("from")
	travelCmd.MarkFlagRequired("to")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot world indices over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "planar trajectory plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&entityIdx, "entity", 0, "entity index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "crossing statistics and world spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&entityIdx, "entity", 0, "entity index")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run data as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [out_file]",
		Short: "write run data as a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], args[1])
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "terminal view with live entities",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "first person viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify world crossings")

	shaderCmd := &cobra.Command{
		Use:   "shader",
		Short: "emit the GLSL fragment library",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(knot.FragmentLib())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, travelCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, liveCmd, guiCmd, shaderCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file, and flag overrides.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "demo"
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.GetPreset(name)
	if cfg == nil && configFile == "" {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if cfg != nil {
		// Work on a copy so overrides never leak into the preset table.
		c := *cfg
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = "custom"
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	entities, err := cfg.BuildEntities()
	if err != nil {
		return err
	}

	s := sim.New(entities)
	s.AddMetric(metrics.NewCrossings())
	s.AddMetric(metrics.NewWorldHistogram())

	fmt.Printf("running %s scenario...\n", name)
	start := time.Now()

	result, err := s.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, Seed: cfg.Seed})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, Seed: cfg.Seed}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(result.Samples))
	fmt.Println("\nentities:")
	for i, n := range result.Names {
		final := result.Samples[len(result.Samples)-1][i]
		fmt.Printf("  %-8s world=%d crossings=%d\n", n, final.World, result.Crossings[i])
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func parseVec3(s string) (geom.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("bad coordinate %q: %w", p, err)
		}
		v[i] = f
	}
	return geom.V3(v[0], v[1], v[2]), nil
}

func travelSegment(cmd *cobra.Command, args []string) error {
	from, err := parseVec3(fromFlag)
	if err != nil {
		return err
	}
	to, err := parseVec3(toFlag)
	if err != nil {
		return err
	}

	world := worldFlag
	portal.Travel(&world, from, to)
	fmt.Printf("%d\n", world)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tENTITIES\tCROSSINGS")

	for _, run := range runs {
		total := 0
		for _, c := range run.Crossings {
			total += c
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Entities),
			total,
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

	samples, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	for j, name := range meta.Entities {
		if j >= len(samples[0]) {
			break
		}
		data := make([]float64, len(samples))
		for i := range samples {
			data[i] = float64(samples[i][j].World)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(7),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s: world index", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func loadResult(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	result := &sim.Result{
		Times:     times,
		Names:     meta.Entities,
		Samples:   samples,
		Crossings: meta.Crossings,
		Metrics:   meta.Metrics,
	}
	return meta, result, nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}

	portrait := analysis.GeneratePhasePortrait(result, entityIdx)
	if portrait == nil {
		return fmt.Errorf("no data for entity %d", entityIdx)
	}

	fmt.Printf("planar trajectory: %s\n", meta.ID)
	if entityIdx < len(meta.Entities) {
		fmt.Printf("entity: %s\n\n", meta.Entities[entityIdx])
	}
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.Samples) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("crossing analysis: %s\n", meta.ID)
	if entityIdx < len(meta.Entities) {
		fmt.Printf("entity: %s\n\n", meta.Entities[entityIdx])
	}

	signal := analysis.WorldSignal(result, entityIdx)
	if signal == nil {
		return fmt.Errorf("no data for entity %d", entityIdx)
	}

	ps := analysis.PowerSpectrum(signal)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps[:len(ps)/2],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("world index power spectrum"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	dwells := analysis.DwellTimes(result, entityIdx, meta.Dt)
	fmt.Printf("world visits: %d\n", len(dwells))
	fmt.Printf("mean dwell: %.3fs\n", analysis.MeanDwell(dwells))
	fmt.Printf("crossing rate: %.3f/s\n", analysis.CrossingRate(result, entityIdx))
	if period := analysis.DominantPeriod(signal, meta.Dt); period > 0 {
		fmt.Printf("dominant period: %.3fs\n", period)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for _, name := range meta.Entities {
		header = append(header, name+"_x", name+"_y", name+"_z", name+"_world")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range samples {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, s := range samples[i] {
			row = append(row,
				strconv.FormatFloat(s.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(s.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(s.Pos.Z, 'f', 6, 64),
				strconv.Itoa(s.World))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	build := func() []*entity.Entity {
		entities, err := cfg.BuildEntities()
		if err != nil {
			return nil
		}
		return entities
	}

	m := viz.NewModel(build, cfg.Dt)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(cfg, withAudio)
}
