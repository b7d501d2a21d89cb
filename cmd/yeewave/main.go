package main

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/yeewave/internal/config"
	"github.com/san-kum/yeewave/internal/dynamo"
	"github.com/san-kum/yeewave/internal/logging"
	"github.com/san-kum/yeewave/internal/metrics"
	"github.com/san-kum/yeewave/internal/physics"
	"github.com/san-kum/yeewave/internal/sim"
	"github.com/san-kum/yeewave/internal/sysmon"
	"github.com/san-kum/yeewave/internal/viz"
	"github.com/spf13/cobra"
)

// stabilityLimit flags runs where |Ex| grows past ten times the initial peak.
const stabilityLimit = 10.0

var (
	bench         bool
	multiThreaded bool
	configFile    string
	preset        string
	trackEnergy   bool
	logLevel      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "yeewave",
		Short: "1-D FDTD electromagnetic wave simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}

	rootCmd.Flags().BoolVar(&bench, "bench", false, "disable rendering and print progress every 100 ticks")
	rootCmd.Flags().BoolVar(&multiThreaded, "m", false, "update fields in parallel")
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.Flags().BoolVar(&trackEnergy, "energy", false, "track field energy and plot it after the run")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level (stderr)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s grid=%d dz=%g fps=%d\n", name, p.GridSize, p.Dz, p.FPS)
			}
		},
	}

	rootCmd.AddCommand(presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	lvl, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := logging.NewLeveledLogger(os.Stderr, "yeewave", lvl)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	strategy := dynamo.StrategySequential
	if multiThreaded {
		strategy = dynamo.StrategyParallel
	}
	engine := physics.NewEngine(dynamo.NewExecutor(strategy, cfg.Workers, cfg.MinChunk))
	fs := physics.NewFieldState(cfg.GridSize, cfg.Dz)

	width, height := viz.TerminalSize(int(os.Stdout.Fd()))
	driver, err := sim.New(fs, engine, viz.NewANSITerminal(os.Stdout), os.Stdout, sim.Options{
		Bench:            bench,
		FPS:              cfg.FPS,
		ProgressInterval: cfg.ProgressInterval,
		Width:            width,
		Height:           height,
		TotalTicks:       cfg.TotalTicks(),
	})
	if err != nil {
		return err
	}
	driver.SetLogger(logger)

	var drift *metrics.EnergyDrift
	if trackEnergy {
		drift = metrics.NewEnergyDrift()
		driver.AddMetric(drift)
		driver.AddMetric(metrics.NewStability(stabilityLimit))
	}

	report, err := driver.Run()
	if err != nil {
		return err
	}

	if drift != nil {
		fmt.Print(viz.EnergySummary(drift.History(), drift.Value(), width))
		if report.Metrics["stability"] < 1 {
			logger.Warn("field exceeded stability limit", logging.Float64("stability", report.Metrics["stability"]))
		}
	}

	if logger.DebugEnabled() {
		logSystemLoad(cmd.Context(), logger, report.Strategy)
	}
	return nil
}

func logSystemLoad(ctx context.Context, logger logging.Logger, strategy string) {
	snap, err := sysmon.Sample(ctx)
	if err != nil {
		logger.Debug("system sample incomplete", logging.Err(err))
	}
	logger.Debug("system load", append(snap.Fields(), logging.String("strategy", strategy))...)
}

// loadConfig applies the preset first, then the config file on top of it.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	return cfg, nil
}
