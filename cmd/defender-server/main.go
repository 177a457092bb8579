// Command defender-server runs the simulation for browser clients over websockets
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/system-defender/config"
	"github.com/lixenwraith/system-defender/network"
	"github.com/lixenwraith/system-defender/shop"
	"github.com/lixenwraith/system-defender/status"
)

const statsInterval = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	listen := flag.String("listen", "", "Listen address, overrides the config")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "defender-server").Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)

	stats := status.NewRegistry()
	lookup := network.NewLookupClient(cfg.Lookup.BaseURL, cfg.Lookup.APIKey, cfg.Lookup.Timeout, log, stats)
	store := shop.NewStore(cfg.Profile.Path)
	server := network.NewServer(cfg.Network(), lookup, store, stats, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	g.Go(func() error {
		reportStats(ctx, stats, log)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Interface("stats", stats.Export()).Msg("shutdown complete")
}

// reportStats logs the registry until ctx ends
func reportStats(ctx context.Context, stats *status.Registry, log zerolog.Logger) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Info().Interface("stats", stats.Export()).Msg("stats")
		}
	}
}
