package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lissatunnel/internal/analysis"
	"github.com/san-kum/lissatunnel/internal/config"
	"github.com/san-kum/lissatunnel/internal/export"
	"github.com/san-kum/lissatunnel/internal/flight"
	"github.com/san-kum/lissatunnel/internal/session"
	"github.com/san-kum/lissatunnel/internal/stream"
	"github.com/san-kum/lissatunnel/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	// Curve and tunnel
	freqA        float64
	freqB        float64
	sphereR      float64
	radius       float64
	sides        int
	polygons     int
	wallAlpha    float64
	intermittent bool
	// Camera
	speed   float64
	outside bool
	// Live view
	frameRate int
	theme     string
	// Headless flights
	dt       float64
	duration float64
	save     bool
	// SVG export
	outPath   string
	svgMode   string
	svgT      float64
	svgWidth  int
	svgHeight int
	plane     string
	// Frame server
	addr string
)

// main registers the commands and runs the root command. With no subcommand
// it opens the preset menu.
func main() {
	rootCmd := &cobra.Command{
		Use:   "lissatunnel",
		Short: "fly through a tunnel wrapped around a lissajous curve",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, log.Logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lissatunnel", "data directory for recorded flights")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "fly through the tunnel in the terminal",
		RunE:  runLive,
	}
	addTunnelFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "colour theme")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "describe the curve and tunnel geometry",
		RunE:  showInfo,
	}
	addTunnelFlags(infoCmd)

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "fly headlessly and plot the camera path",
		RunE:  runTrace,
	}
	addTunnelFlags(traceCmd)
	addFlightFlags(traceCmd)
	traceCmd.Flags().BoolVar(&save, "save", false, "store the flight in the data directory")

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "fly several presets side by side and compare them",
		RunE:  comparePresets,
	}
	addFlightFlags(compareCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded flights",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded flight",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "export a frame or the curve as svg",
		RunE:  exportSVG,
	}
	addTunnelFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().StringVar(&svgMode, "mode", "frame", "what to draw: frame, canvas or curve")
	svgCmd.Flags().Float64Var(&svgT, "t", 0, "camera parameter of the exported frame")
	svgCmd.Flags().IntVar(&svgWidth, "width", 1120, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 630, "image height")
	svgCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane for curve mode: xy, xz or yz")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream camera frames and the tunnel mesh over websockets",
		RunE:  runServe,
	}
	addTunnelFlags(serveCmd)
	serveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tA\tB\tR\tRINGS\tSIDES\tALPHA\tGAPS\tSPEED")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%d\t%d\t%.2f\t%v\t%+.3f\n",
					name, p.Curve.A, p.Curve.B, p.Curve.R,
					p.Tunnel.NumPolygons, p.Tunnel.Sides, p.Tunnel.WallAlpha, p.Tunnel.Intermittent, p.Camera.Speed)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "init [path]",
			Short: "write the effective configuration to a file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := resolveConfig(cmd)
				if err != nil {
					return err
				}
				if err := config.Save(args[0], cfg); err != nil {
					return err
				}
				log.Info().Str("path", args[0]).Msg("config written")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := resolveConfig(cmd)
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(cfg)
			},
		},
	)

	rootCmd.AddCommand(liveCmd, infoCmd, traceCmd, compareCmd, runsCmd, plotCmd, svgCmd, serveCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTunnelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&freqA, "a", config.DefaultA, "first frequency")
	cmd.Flags().Float64Var(&freqB, "b", config.DefaultB, "second frequency")
	cmd.Flags().Float64Var(&sphereR, "r", config.DefaultR, "curve radius")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "ring radius")
	cmd.Flags().IntVar(&sides, "sides", config.DefaultSides, "sides per ring")
	cmd.Flags().IntVarP(&polygons, "polygons", "n", config.DefaultNumPolygons, "number of rings (10-1000)")
	cmd.Flags().Float64Var(&wallAlpha, "alpha", config.DefaultWallAlpha, "wall opacity (0-1)")
	cmd.Flags().BoolVar(&intermittent, "intermittent", false, "leave a gap after every other wall")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial camera speed (-0.5 to 0.5)")
	cmd.Flags().BoolVar(&outside, "outside", false, "start with the outside view")
}

func addFlightFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.016, "frame time")
	cmd.Flags().Float64Var(&duration, "time", 30, "flight duration in seconds")
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("a") {
		cfg.Curve.A = freqA
	}
	if flags.Changed("b") {
		cfg.Curve.B = freqB
	}
	if flags.Changed("r") {
		cfg.Curve.R = sphereR
	}
	if flags.Changed("radius") {
		cfg.Tunnel.Radius = radius
	}
	if flags.Changed("sides") {
		cfg.Tunnel.Sides = sides
	}
	if flags.Changed("polygons") {
		cfg.Tunnel.NumPolygons = polygons
	}
	if flags.Changed("alpha") {
		cfg.Tunnel.WallAlpha = wallAlpha
	}
	if flags.Changed("intermittent") {
		cfg.Tunnel.Intermittent = intermittent
	}
	if flags.Changed("speed") {
		cfg.Camera.Speed = speed
	}
	if flags.Changed("outside") {
		cfg.Camera.OutsideView = outside
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func startSession(cmd *cobra.Command) (*session.Session, *config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	reg := session.NewRegistry()
	reg.Register(cfg.Surface())
	surface, err := reg.Resolve(cfg.Canvas.ID)
	if err != nil {
		return nil, nil, err
	}
	s, err := session.New(surface, cfg.ToSession(), session.WithLogger(log.Logger))
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, cfg, err := startSession(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(s, cfg.FPS, theme, log.Logger)
}

const spectrumSamples = 1024

func showInfo(cmd *cobra.Command, args []string) error {
	s, _, err := startSession(cmd)
	if err != nil {
		return err
	}
	p, t := s.Params(), s.Tunnel()
	mesh := t.Mesh()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "curve\tA=%g B=%g R=%g\n", p.A, p.B, p.R)
	fmt.Fprintf(w, "period\t%.6f\n", p.Period())
	fmt.Fprintf(w, "ring spacing\t%.6f\n", t.Spacing)
	fmt.Fprintf(w, "rings\t%d x %d sides, radius %g\n", len(t.Rings), t.Sides, t.Radius)
	fmt.Fprintf(w, "faces\t%d (intermittent %v)\n", len(t.Faces), t.Intermittent)
	fmt.Fprintf(w, "wall alpha\t%.2f\n", t.WallAlpha)
	fmt.Fprintf(w, "mesh\t%d vertices, %d triangles\n", len(mesh.Vertices), len(mesh.Triangles)/3)
	fmt.Fprintf(w, "guides\t%d longitude, %d latitude segments\n", len(mesh.LongitudeLines)/2, len(mesh.LatitudeLines)/2)
	for _, axis := range []analysis.Axis{analysis.AxisX, analysis.AxisY, analysis.AxisZ} {
		ps, err := analysis.Spectrum(p, axis, spectrumSamples)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s harmonics\t", axis)
		for _, pk := range analysis.Peaks(ps, 3) {
			fmt.Fprintf(w, "%.3g rad/t (%.3f)  ", analysis.AngularFrequency(p, pk.Harmonic), pk.Amplitude)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	s, cfg, err := startSession(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	fs := stream.NewServer(s, cfg.FPS, log.Logger)
	srv := &http.Server{
		Addr:         addr,
		Handler:      fs.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Int("fps", cfg.FPS).Msg("frame server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	go fs.Run(ctx)

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func standardRecorder(s *session.Session) *flight.Recorder {
	r := flight.New(s)
	flight.Standard(r)
	return r
}

func runTrace(cmd *cobra.Command, args []string) error {
	s, cfg, err := startSession(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fc := flight.Config{Dt: dt, Duration: duration}
	result, err := standardRecorder(s).Run(ctx, fc)
	if err != nil {
		return err
	}

	plotFlight(result.Samples)
	fmt.Printf("path length %.3f  laps %.0f  max turn %.4f rad\n",
		result.Metrics["path_length"], result.Metrics["laps"], result.Metrics["max_turn"])

	if !save {
		return nil
	}
	st := flight.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "flight"
	}
	runID, err := st.Save(name, cfg.ToSession(), s.Params().Period(), fc, result)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", runID)
	return nil
}

func plotFlight(samples []flight.Sample) {
	r := &flight.Result{Samples: samples}
	series := []struct {
		caption string
		pick    func(flight.Sample) float64
	}{
		{"camera t", func(s flight.Sample) float64 { return s.T }},
		{"x", func(s flight.Sample) float64 { return s.Position.X }},
		{"y", func(s flight.Sample) float64 { return s.Position.Y }},
		{"z", func(s flight.Sample) float64 { return s.Position.Z }},
	}
	for _, sr := range series {
		data := r.Column(sr.pick)
		if len(data) < 2 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func comparePresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	recorders := make([]*flight.Recorder, 0, len(names))
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s", name)
		}
		s, err := session.New(cfg.Surface(), cfg.ToSession(), session.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		recorders = append(recorders, standardRecorder(s))
	}

	ctx, cancel := signalContext()
	defer cancel()
	start := time.Now()
	results, err := flight.NewEnsemble(recorders...).Run(ctx, flight.Config{Dt: dt, Duration: duration})
	if err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Int("flights", len(results)).Msg("compare finished")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPERIOD\tFINAL T\tPATH\tLAPS\tMAX TURN")
	for i, res := range results {
		last := res.Samples[len(res.Samples)-1]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.0f\t%.4f\n",
			names[i], recorders[i].Session().Params().Period(), last.T,
			res.Metrics["path_length"], res.Metrics["laps"], res.Metrics["max_turn"])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := flight.NewStore(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded flights")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCURVE\tRINGS\tSPEED\tDURATION\tPATH\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%g/%g/%g\t%d\t%+.3f\t%.1fs\t%.3f\t%s\n",
			r.ID, r.A, r.B, r.R, r.Polygons, r.Speed, r.Duration,
			r.Metrics["path_length"], r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := flight.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s  A=%g B=%g R=%g  %d samples\n\n", meta.ID, meta.A, meta.B, meta.R, len(samples))
	plotFlight(samples)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	s, _, err := startSession(cmd)
	if err != nil {
		return err
	}

	var out string
	switch svgMode {
	case "frame":
		s.SetCameraT(svgT)
		out = export.FrameToSVG(s.Snapshot(), svgWidth, svgHeight)
	case "canvas":
		s.SetCameraT(svgT)
		snap := s.Snapshot()
		c := viz.NewCanvas(svgWidth/8, svgHeight/16)
		viz.Render3D(c, viz.TunnelWireframe(snap.Tunnel, snap.View, snap.Pose.Position), viz.NewProjector(snap.Pose))
		out = export.CanvasToSVG(c, 4, string(viz.Themes[0].Walls))
	case "curve":
		out = export.TrajectoryToSVG(export.CurvePoints(s.Params(), 2000, plane), svgWidth, svgHeight, string(viz.Themes[0].Accent))
	default:
		return fmt.Errorf("unknown svg mode: %s (available: frame, canvas, curve)", svgMode)
	}

	if outPath == "" {
		_, err := fmt.Println(out)
		return err
	}
	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Str("mode", svgMode).Msg("svg written")
	return nil
}
