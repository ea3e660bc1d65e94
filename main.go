package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elevsim/building"
	"elevsim/config"
	"elevsim/snapshot"

	"github.com/golang/glog"
)

func main() {
	configPtr := flag.String("config", "", "Path to simulation config (YAML)")
	envFilePtr := flag.String("env-file", ".env", "Dotenv file that may set "+config.EnvConfigPath)
	ticksPtr := flag.Int("ticks", -1, "Number of ticks to run, 0 runs until interrupted (overrides config)")
	intervalPtr := flag.Duration("interval", -1, "Wall-clock time between ticks (overrides config)")
	flag.Parse()
	defer glog.Flush()

	path, err := config.ResolvePath(*configPtr, *envFilePtr)
	if err != nil {
		glog.Exitf("Resolving config path: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		glog.Exitf("Loading config: %v", err)
	}
	if *ticksPtr >= 0 {
		cfg.Ticks = *ticksPtr
	}
	if *intervalPtr >= 0 {
		cfg.TickInterval = *intervalPtr
	}

	b, err := building.FromConfig(cfg)
	if err != nil {
		glog.Exitf("Building simulation: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run(ctx, b, cfg.Ticks, cfg.TickInterval, os.Stdout)

	stats := b.Stats()
	glog.Infof("Stopped after %d ticks: %d arrived, %d delivered, mean wait %.2f",
		stats.Ticks, stats.Arrived, stats.Delivered, stats.MeanWait())
}

// run ticks the building until ctx is done or `ticks` ticks have passed
// (0 means no limit), printing a snapshot after every tick.
func run(ctx context.Context, b *building.Building, ticks int, interval time.Duration, w io.Writer) {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 0; ticks == 0 || n < ticks; n++ {
		select {
		case <-ctx.Done():
			glog.Infof("Interrupted: %v", ctx.Err())
			return
		case <-ticker.C:
		}

		b.Tick()
		if err := snapshot.Render(w, b.Snapshot()); err != nil {
			glog.Errorf("Rendering snapshot: %v", err)
		}
	}
}
