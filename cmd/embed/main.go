package main

import (
	"context"
	"os"
	"time"

	"mufessir/internal/config"
	"mufessir/internal/entity"
	"mufessir/internal/repository/specification"
	"mufessir/internal/repository/unitofwork"
	"mufessir/pkg/database"
	"mufessir/pkg/embedding"

	"github.com/fatih/color"
)

// Backfills embeddings for tafsirs imported without one. Safe to re-run;
// it only touches rows whose embedding is still NULL.
func main() {
	cfg := config.Load()

	if cfg.AiDisabled() {
		color.Red("OPENAI_API_KEY is not set (or AI_MODE=off), cannot generate embeddings.")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	provider := embedding.NewOpenAIProvider(cfg.Ai.APIKey, cfg.Ai.BaseURL, cfg.Ai.EmbedModel)

	batchSize := cfg.Import.EmbedBatch
	total := 0
	failed := 0

	for {
		tafsirs, err := uow.TafsirRepository().FindMissingEmbeddings(ctx, batchSize)
		if err != nil {
			color.Red("Failed to load tafsirs: %v", err)
			os.Exit(1)
		}
		if len(tafsirs) == 0 {
			break
		}

		for _, tafsir := range tafsirs {
			verse, err := uow.VerseRepository().FindOne(ctx, specification.ByStringID{ID: tafsir.VerseId})
			if err != nil {
				color.Yellow("Verse lookup failed for %s: %v", tafsir.Id, err)
				failed++
				continue
			}
			vector, err := provider.Embed(ctx, entity.EmbeddingInput(verse, tafsir))
			if err != nil {
				color.Yellow("Embed failed for %s: %v", tafsir.Id, err)
				failed++
				continue
			}
			if err := uow.TafsirRepository().UpdateEmbedding(ctx, tafsir.Id, vector); err != nil {
				color.Yellow("Update failed for %s: %v", tafsir.Id, err)
				failed++
				continue
			}
			total++
		}
		color.Cyan("Embedded %d tafsirs so far...", total)

		// A whole batch failing means the provider is down; bail instead
		// of spinning on the same rows.
		if failed >= len(tafsirs) {
			color.Red("Every embedding in the batch failed, aborting.")
			os.Exit(1)
		}
		failed = 0

		time.Sleep(200 * time.Millisecond)
	}

	color.Green("Backfill complete: %d embeddings generated", total)
}
