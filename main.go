// main.go
//
// Entry point for the game server.
// Startup order: config → logging → fallback list → lookup cache →
// dictionary client → word source → session store → HTTP server.
// The server stops gracefully on SIGINT/SIGTERM.

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle-clone/assets"
	"github.com/robalobadob/wordle-clone/internal/config"
	"github.com/robalobadob/wordle-clone/internal/db"
	"github.com/robalobadob/wordle-clone/internal/dictionary"
	"github.com/robalobadob/wordle-clone/internal/httpserver"
	"github.com/robalobadob/wordle-clone/internal/store"
	"github.com/robalobadob/wordle-clone/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	fallback, err := words.LoadFallback(cfg.FallbackFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fallback word list")
	}

	dictOpts := []dictionary.Option{
		dictionary.WithTimeout(cfg.LookupTimeout),
		dictionary.WithLimiter(rate.NewLimiter(rate.Limit(cfg.DictionaryRPS), cfg.DictionaryBurst)),
	}
	if cfg.CacheEnabled {
		sqlDB, err := openCache(cfg.CacheDB)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.CacheDB).Msg("failed to open lookup cache")
		}
		defer sqlDB.Close()
		dictOpts = append(dictOpts, dictionary.WithCache(dictionary.NewSQLiteCache(sqlDB, cfg.CacheTTL)))
	}
	dict := dictionary.New(cfg.DictionaryURL, dictOpts...)

	provider := words.NewHTTPProvider(cfg.RandomWordURL, cfg.LookupTimeout, nil)
	source := words.NewSource(provider, dict, fallback, cfg.MaxCandidateAttempts)

	mem := store.NewMemoryStore(cfg.SessionTTL)
	srv := httpserver.New(cfg, mem, source, dict)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("port", cfg.Port).
		Int("fallbackWords", len(fallback.Words())).
		Bool("cache", cfg.CacheEnabled).
		Msg("starting wordle-clone server")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("server shutdown complete")
}

// openCache opens the lookup cache database and applies migrations.
func openCache(path string) (*sql.DB, error) {
	sqlDB, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	fsys, err := assets.Migrations()
	if err == nil {
		err = db.Migrate(sqlDB, fsys)
	}
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}
