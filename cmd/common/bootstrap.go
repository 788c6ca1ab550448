// Package common holds the startup sequence shared by the serve and ask
// commands: load the ledger, embed every record and assemble the engine.
package common

import (
	"context"
	"fmt"

	"github.com/alanrezendeee/retechfin-rag/internal/config"
	"github.com/alanrezendeee/retechfin-rag/internal/engine"
	"github.com/alanrezendeee/retechfin-rag/internal/gemini"
	"github.com/alanrezendeee/retechfin-rag/internal/ledger"
	"github.com/alanrezendeee/retechfin-rag/internal/logging"
)

// App bundles everything a command needs after startup.
type App struct {
	Engine *engine.Engine
	Client *gemini.Client
	Log    logging.Logger
}

// Close releases the Gemini connection.
func (a *App) Close() error {
	if a.Client != nil {
		return a.Client.Close()
	}
	return nil
}

// Bootstrap runs the full build phase. It is fail-fast: any error loading
// the ledger, reaching Gemini or building the index aborts startup.
func Bootstrap(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	rules, err := ledger.LoadCategoryRules(cfg.Ledger.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	loader := ledger.NewLoader(cfg.Ledger.Directory, rules, log)
	store, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	log.Info("Ledger loaded",
		logging.F("records", store.Len()),
		logging.F("skipped_rows", store.Skipped()))

	client, err := gemini.NewClient(ctx, cfg.AI.APIKey, cfg.AI.EmbeddingModel, cfg.AI.GenerationModel, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	index, err := engine.BuildIndex(ctx, store, client, cfg.AI.EmbedBatchSize, log)
	if err != nil {
		closeQuietly(client, log)
		return nil, fmt.Errorf("failed to build similarity index: %w", err)
	}

	opts := engine.RetrievalOptions{
		GlobalK:   cfg.Retrieval.GlobalK,
		MinK:      cfg.Retrieval.MinK,
		MaxK:      cfg.Retrieval.MaxK,
		Ratio:     cfg.Retrieval.Ratio,
		Threshold: cfg.Retrieval.Threshold,
		Policy:    cfg.Retrieval.Policy,
	}

	eng := engine.New(store, index,
		engine.NewClassifier(client, log),
		engine.NewRetriever(client, index, opts, log),
		engine.NewAssembler(client, log),
		log)

	return &App{Engine: eng, Client: client, Log: log}, nil
}

func closeQuietly(client *gemini.Client, log logging.Logger) {
	if err := client.Close(); err != nil {
		log.WithError(err).Warn("Failed to close Gemini client")
	}
}
