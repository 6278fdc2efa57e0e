package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/sixgun/config"
	"github.com/automoto/sixgun/server/core"
	"github.com/automoto/sixgun/server/logging"
	"github.com/automoto/sixgun/shared/protocol"
	"github.com/spf13/viper"
)

func main() {
	configDir := flag.String("config", ".", "Directory containing "+config.FileName)
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		l := logging.New(os.Stderr, "info", false)
		l.Fatal().Err(err).Msg("failed to load config")
	}
	cfg, err := config.Server()
	if err != nil {
		l := logging.New(os.Stderr, "info", false)
		l.Fatal().Err(err).Msg("invalid config")
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Pretty)
	if viper.ConfigFileUsed() == "" {
		logger.Warn().Str("dir", *configDir).Msg("no " + config.FileName + " found, using defaults")
	}

	if err := protocol.RegisterComponents(); err != nil {
		logger.Fatal().Err(err).Msg("failed to register components")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := core.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create server")
	}

	if cfg.Master.URL != "" {
		reg := core.NewRegistration(cfg.Master, cfg.Server, server, logger)
		go reg.Run(ctx)
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down server")
		os.Exit(0)
	}()

	logger.Info().
		Str("name", cfg.Server.Name).
		Int("port", cfg.Server.Port).
		Int("tickRate", cfg.Server.TickRate).
		Str("version", cfg.Server.Version).
		Msg("starting sixgun server")
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
