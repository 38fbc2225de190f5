/*
Copyright © 2025 phamtrung99
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/phamtrung99/ragdex/config"
	"github.com/phamtrung99/ragdex/service"
	"github.com/phamtrung99/ragdex/store"
)

// app bundles the wired services every subcommand works with.
type app struct {
	cfg       *config.Config
	store     *store.Store
	stats     *service.StatsService
	indexer   *service.Indexer
	retriever *service.Retriever
	answer    *service.AnswerService

	closers []func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	indexStore, err := store.NewStore(cfg.IndexDir)
	if err != nil {
		return nil, err
	}
	stats := service.NewStatsService(cfg.StatsFile, cfg.PDFDir)

	a := &app{
		cfg:   cfg,
		store: indexStore,
		stats: stats,
	}

	var (
		embedder service.Embedder
		ai       service.AIService
	)
	switch cfg.Provider {
	case "gemini":
		keys := cfg.GeminiAPIKeys()
		if len(keys) == 0 {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		ge, err := service.NewGeminiEmbedder(ctx, keys[0], cfg.GeminiEmbeddingModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, ge.Close)
		ga, err := service.NewGeminiService(keys, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, ga.Close)
		embedder, ai = ge, ga
	case "openai":
		embedder = service.NewOpenAIEmbedder(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.OpenAIEmbeddingModel)
		ai = service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	a.indexer = service.NewIndexer(service.NewPDFService(), embedder, indexStore, stats)
	a.retriever = service.NewRetriever(embedder, indexStore)
	a.answer = service.NewAnswerService(ai, cfg.Persona)
	return a, nil
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		closeFn()
	}
}
