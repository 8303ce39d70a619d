package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/mazecar/audio"
	"github.com/lixenwraith/mazecar/config"
	"github.com/lixenwraith/mazecar/core"
	"github.com/lixenwraith/mazecar/engine"
	"github.com/lixenwraith/mazecar/parameter"
	"github.com/lixenwraith/mazecar/render"
	"github.com/lixenwraith/mazecar/simulation"
)

// runHeadless starts the simulation, advances virtual time by d and prints the final status
func runHeadless(sim *simulation.Simulation, d time.Duration, w io.Writer) {
	sim.Start()
	sim.Advance(d)

	snap := sim.Snapshot()
	fmt.Fprintf(w, "run=%s t=%s\n", sim.RunID(), snap.Time)
	for _, line := range sim.Status().Lines() {
		fmt.Fprintln(w, line)
	}
}

type keyAction int

const (
	keyNone keyAction = iota
	keyQuit
	keyPause
)

// actionFor maps a key event to a host action
func actionFor(ev *tcell.EventKey) keyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return keyQuit
		case 'p', 'P', ' ':
			return keyPause
		}
	}
	return keyNone
}

// runInteractive owns the terminal: the clock goroutine feeds wall time into the simulation,
// the main loop redraws on a frame ticker and handles quit and pause
func runInteractive(sim *simulation.Simulation, cfg *config.Config, logger zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "creating screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initializing screen")
	}
	defer screen.Fini()

	// Engine goroutines restore this screen before reporting a panic
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)

	if cfg.Audio.Enabled {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the simulation can run without sound
			logger.Warn().Err(err).Msg("audio unavailable")
		} else {
			defer sound.Cleanup()
			sim.OnBounce(sound.OnBounce)
		}
	}

	renderer := render.NewTerminalRenderer(screen)
	clock := engine.NewClock(engine.NewTimeProvider(), sim, parameter.FrameUpdateInterval, parameter.ClockMaxCatchUp)

	sim.Start()
	clock.Start()
	defer clock.Stop()

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	})

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	logger.Info().Msg("interactive session started")
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch actionFor(ev) {
				case keyQuit:
					logger.Info().Uint64("steps", clock.Steps()).Msg("quit")
					return nil
				case keyPause:
					paused := clock.TogglePause()
					logger.Debug().Bool("paused", paused).Msg("pause toggled")
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-frameTicker.C:
			renderer.RenderFrame(sim.Snapshot(), sim.Status().Lines(), clock.IsPaused())
		}
	}
}
