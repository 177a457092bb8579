// Command system-defender is the terminal client: a lobby for the student shop and the typing shooter itself
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/system-defender/audio"
	"github.com/lixenwraith/system-defender/config"
	"github.com/lixenwraith/system-defender/core"
	"github.com/lixenwraith/system-defender/network"
	"github.com/lixenwraith/system-defender/service"
	"github.com/lixenwraith/system-defender/shop"
	"github.com/lixenwraith/system-defender/status"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to "+logDir+"/"+logFileName)
	muteFlag   = flag.Bool("mute", false, "Disable sound effects")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	logFile, logger := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	stats := status.NewRegistry()

	services := service.NewHub()
	sounds := audio.NewSoundManager(&cfg.Audio, nil, stats, logger)
	services.Register(sounds)
	if err := services.StartAll(); err != nil {
		fmt.Printf("Audio start failed: %v (continuing without audio)\n", err)
		logger.Warn().Err(err).Msg("audio disabled")
	}
	defer services.StopAll()

	lookup := network.NewLookupClient(cfg.Lookup.BaseURL, cfg.Lookup.APIKey, cfg.Lookup.Timeout, logger, stats)
	store := shop.NewStore(cfg.Profile.Path)
	lobby := newLobbyModel(cfg.Game, lookup, store, logger)

	for {
		choice, err := runLobby(lobby, cfg.Lookup.Timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if choice == lobbyQuit {
			break
		}

		result, err := runGame(lobby.Selection(), cfg, sounds, stats, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if result == gameQuit {
			break
		}
	}

	logger.Info().Interface("stats", stats.Export()).Msg("exit")
}
