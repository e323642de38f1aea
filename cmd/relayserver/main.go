// Package main provides the relay server binary: a WebSocket coordinator for
// multiplayer rooms, host migration, and shared world facts.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/noahzinx22/nextbot-multiplayer-server/internal/config"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/game/ident"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/observability"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/relay"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/relay/ws"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	gen := ident.NewGenerator(ident.NewCryptoSource())
	core := relay.New(logger, gen)
	wsSrv := ws.NewServer(cfg.Server, logger, core)

	logger.Info("starting relay server",
		zap.String("addr", cfg.Server.Addr()),
	)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("websocket", wsSrv)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("lifecycle failed", zap.Error(err))
	}
}
