package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/adapters/database"
	"github.com/dihora04/djbook.in-sub000/internal/adapters/search"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/postgres"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/typesense"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/observability"
	"github.com/dihora04/djbook.in-sub000/pkg/config"
)

// Reindexer rebuilds the djs Typesense collection from the primary store.
// Run once for a full rebuild, or with -interval for periodic refresh.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("djbook-indexer", os.Getenv("ENV"))

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		parsed, err := time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Str("interval", intervalValue).Err(err).Msg("invalid interval")
		}
		if parsed <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
		interval = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("next_run_in", interval).Msg("reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	djRepo := database.NewDJAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Msg("deleting djs collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.DJsCollection).Delete(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	// Only approved profiles belong in the public index
	profiles, err := djRepo.List(ctx, repositories.DJFilter{
		ApprovalStatus: entities.ApprovalStatusApproved,
		Limit:          1000,
	})
	if err != nil {
		return err
	}

	log.Info().Int("count", len(profiles)).Msg("indexing dj profiles")

	indexed := 0
	for _, profile := range profiles {
		if profile == nil {
			continue
		}
		if err := adapter.Index(ctx, profile); err != nil {
			log.Error().Str("id", profile.ID).Err(err).Msg("failed to index dj profile")
			continue
		}
		indexed++
	}

	log.Info().Int("indexed", indexed).Msg("indexing complete")
	return nil
}
