package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/audio"
	"github.com/lixenwraith/system-defender/config"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/core"
	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/modes"
	"github.com/lixenwraith/system-defender/render"
	"github.com/lixenwraith/system-defender/status"
	"github.com/lixenwraith/system-defender/systems"
)

// gameResult tells main where to go after a game screen closes
type gameResult int

const (
	gameToLobby gameResult = iota
	gameQuit
)

// runGame plays runs on a fresh screen until the player leaves for the lobby or quits
func runGame(sel gameSelection, cfg *config.Config, sounds *audio.SoundManager, stats *status.Registry, logger zerolog.Logger) (gameResult, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return gameQuit, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return gameQuit, fmt.Errorf("init screen: %w", err)
	}
	core.RegisterCrashTerminal(screen)
	defer func() {
		core.RegisterCrashTerminal(nil)
		screen.Fini()
	}()
	screen.HideCursor()

	ctx := engine.NewGameContext(engine.ContextConfig{
		Width:      cfg.Game.Width,
		Height:     cfg.Game.Height,
		Mode:       sel.Mode,
		Difficulty: sel.Difficulty,
		Mobile:     sel.Mobile,
		Bonus:      sel.Bonus,
		Stats:      stats,
		Logger:     &logger,
	})
	sim := systems.NewSimulation(ctx)
	if sounds != nil && sounds.IsRunning() {
		sim.AddListener(sounds)
	}
	sim.Start()

	renderer := render.NewTerminalRenderer(screen)
	input := modes.NewInputHandler(sim)

	scheduler, _ := engine.NewClockScheduler(sim, nil, constants.GameUpdateInterval, stats)
	scheduler.Start()
	defer scheduler.Stop()

	eventChan := make(chan tcell.Event, 256)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	logger.Info().Str("mode", string(sel.Mode)).Int("difficulty", sel.Difficulty).Msg("game screen opened")

	for {
		select {
		case ev := <-eventChan:
			switch input.HandleEvent(ev) {
			case modes.ActionQuit:
				return gameQuit, nil
			case modes.ActionLobby:
				return gameToLobby, nil
			case modes.ActionResize:
				screen.Sync()
			case modes.ActionRestart:
				logger.Info().Msg("run restarted")
			}
		case <-frameTicker.C:
			snap := sim.Snapshot()
			renderer.RenderFrame(&snap)
		}
	}
}
