package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-placer/internal/httpserver"
	"github.com/robalobadob/wordle-placer/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	st := store.NewMemoryStore()
	if cfg.Store == "sqlite" {
		db, err := openDB(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		defer db.Close()
		st = store.NewSQLiteStore(db, cfg.Server.Settings)
	}

	go pruneSessions(context.Background(), st, cfg.Server.SessionTTL)

	srv := httpserver.New(st, cfg.Server)
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("starting placer server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// pruneSessions drops sessions idle for longer than ttl, once an hour.
func pruneSessions(ctx context.Context, st store.Store, ttl time.Duration) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := st.Prune(ctx, now.Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("prune sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("pruned", n).Msg("pruned idle sessions")
			}
		}
	}
}
