// Command tilesim runs a simulation config headlessly and prints the final body
// states and a digest of them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/sim"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/sandbox.yaml", "simulation config (YAML)")
	steps := flag.Int("steps", 0, "number of steps to run (0 = use config)")
	asJSON := flag.Bool("json", false, "print final states as JSON")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tilesim:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*configPath, *steps, *asJSON, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	return cfg.Build()
}

func run(configPath string, steps int, asJSON bool, logger *zap.Logger) error {
	cfg, err := sim.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if steps > 0 {
		cfg.Steps = steps
	}

	runner, err := sim.Build(cfg, logger)
	if err != nil {
		return err
	}
	counts := map[ecs.EventKind]int{}
	runner.OnEvent = func(ev ecs.ContactEvent) { counts[ev.Kind]++ }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := runner.Run(ctx, cfg.Steps); err != nil {
		return err
	}
	logger.Info("simulation finished",
		zap.Uint64("ticks", runner.World.Tick()),
		zap.Any("events", counts),
	)

	digest := runner.Digest()
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Ticks  uint64          `json:"ticks"`
			Digest string          `json:"digest"`
			Bodies []sim.BodyState `json:"bodies"`
		}{runner.World.Tick(), fmt.Sprintf("%016x", digest), runner.Snapshot()})
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tNAME\tPOSITION\tVELOCITY\tCONTACT")
	for _, s := range runner.Snapshot() {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%v\n", s.Entity, s.Name, s.Position, s.Velocity, s.Contact)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Printf("ticks=%d digest=%016x\n", runner.World.Tick(), digest)
	return nil
}
