package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mindreader/go-server/internal/config"
	"github.com/mindreader/go-server/internal/db"
	"github.com/mindreader/go-server/internal/httpserver"
	"github.com/mindreader/go-server/internal/store"
	"github.com/mindreader/go-server/internal/tiles"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	catalog, err := tiles.Load(cfg.TilesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.TilesFile).Msg("failed to load tile catalog")
	}

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg, catalog, store.NewMemoryStore(), sqlDB)
	go srv.RunSweeper(ctx, time.Minute)

	log.Info().Str("port", cfg.Port).Int("tiles", catalog.Len()).Msg("starting go-server")
	go func() {
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()
	<-ctx.Done()
	log.Info().Msg("shutting down")
}
