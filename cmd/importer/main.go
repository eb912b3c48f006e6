// Command importer bulk-loads property submissions from a JSON file (an array
// of submission objects, e.g. an export from the legacy back office) through
// the normalization engine and into the database. Invalid submissions are
// logged and skipped; the rest of the batch continues.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/devillers/checkin-sub000/internal/adapters/ids"
	"github.com/devillers/checkin-sub000/internal/adapters/observability"
	redisad "github.com/devillers/checkin-sub000/internal/adapters/redis"
	"github.com/devillers/checkin-sub000/internal/app"
	"github.com/devillers/checkin-sub000/internal/domain"
	"github.com/devillers/checkin-sub000/internal/normalize"
	"github.com/devillers/checkin-sub000/internal/shared"
	mysqlrepo "github.com/devillers/checkin-sub000/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: importer <submissions.json>")
	}
	path := os.Args[1]

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("read submissions file failed")
	}
	var subs []domain.Submission
	if err := json.Unmarshal(raw, &subs); err != nil {
		log.Fatal().Err(err).Msg("submissions file must be a JSON array")
	}

	log.Info().
		Str("path", path).
		Int("count", len(subs)).
		Int("workers", cfg.Workers).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewPropertyService(repo, cache, ids.New())

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for i, sub := range subs {
		i, sub := i, sub

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			p, err := svc.CreateProperty(ctx, sub, "importer")
			switch {
			case err == nil:
				log.Info().Int("index", i).Str("id", p.ID).Str("slug", p.Slug).Msg("import ok")
			case normalize.IsValidation(err):
				log.Warn().Int("index", i).Str("reason", err.Error()).Msg("submission rejected")
			default:
				log.Error().Int("index", i).Err(err).Msg("import failed")
			}
		}()
	}

	wg.Wait()
	log.Info().Msg("import completed")
}
