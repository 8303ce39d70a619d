// Command mazecar runs the bouncing car simulation in the terminal, or headless on virtual time
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/mazecar/config"
	"github.com/lixenwraith/mazecar/core"
	"github.com/lixenwraith/mazecar/simulation"
	"github.com/lixenwraith/mazecar/telemetry"
)

var (
	configFlag   = flag.String("config", "", "Path to a TOML config file")
	layoutFlag   = flag.String("layout", "", "Obstacle layout file, overrides maze.layout")
	seedFlag     = flag.Uint64("seed", 0, "Random seed, 0 keeps the configured seed")
	headlessFlag = flag.Bool("headless", false, "Run without the terminal UI and print final status")
	durationFlag = flag.Duration("duration", 10*time.Second, "Simulated time for headless runs")
	debugFlag    = flag.Bool("debug", false, "Write debug logs to logs/mazecar.log")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the simulation crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mazecar: %v\n", err)
		return 1
	}
	if *layoutFlag != "" {
		cfg.Maze.Layout = *layoutFlag
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}

	logger, logFile := setupLogging(*debugFlag, *headlessFlag, cfg.LogLevel)
	if logFile != nil {
		defer logFile.Close()
	}

	meter, err := telemetry.NewGlobal()
	if err != nil {
		// Metrics are optional
		logger.Warn().Err(err).Msg("telemetry disabled")
	}

	sim, err := simulation.New(cfg, simulation.Deps{Logger: logger, Meter: meter})
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		fmt.Fprintf(os.Stderr, "mazecar: %v\n", err)
		return 1
	}

	if *headlessFlag {
		runHeadless(sim, *durationFlag, os.Stdout)
		return 0
	}
	if err := runInteractive(sim, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "mazecar: %v\n", err)
		return 1
	}
	return 0
}
