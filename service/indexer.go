package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/phamtrung99/ragdex/store"
	"github.com/phamtrung99/ragdex/types"
	"github.com/phamtrung99/ragdex/utils"
)

// DocumentLoader turns a file on disk into page-wise text units.
type DocumentLoader interface {
	Load(path string) ([]types.TextUnit, error)
}

// Indexer orchestrates the indexing pipeline for one file: load pages, chunk,
// embed, build the flat index and persist the artifact pair. Re-indexing a
// file fully replaces its previous artifacts.
type Indexer struct {
	loader   DocumentLoader
	embedder Embedder
	store    *store.Store
	stats    *StatsService
}

func NewIndexer(loader DocumentLoader, embedder Embedder, indexStore *store.Store, stats *StatsService) *Indexer {
	return &Indexer{
		loader:   loader,
		embedder: embedder,
		store:    indexStore,
		stats:    stats,
	}
}

// IndexOne rebuilds the index of a single PDF with the given chunking
// parameters and records them in the stats file. Returns the number of
// chunks indexed.
func (s *Indexer) IndexOne(ctx context.Context, path string, cfg types.ChunkingConfig) (int, error) {
	chunker, err := NewTextChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return 0, err
	}

	units, err := s.loader.Load(path)
	if err != nil {
		return 0, err
	}

	baseName := utils.BaseName(path)
	chunks, err := chunker.Chunk(baseName, units)
	if err != nil {
		return 0, fmt.Errorf("failed to chunk %s: %w", path, err)
	}

	vectors := make([][]float32, 0, len(chunks))
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Text
		}
		vectors, err = s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("failed to embed %s: %w", path, err)
		}
	}

	idx, err := store.Build(chunks, vectors)
	if err != nil {
		return 0, fmt.Errorf("failed to build index for %s: %w", path, err)
	}
	if err := s.store.Save(baseName, idx); err != nil {
		return 0, fmt.Errorf("failed to persist index for %s: %w", path, err)
	}

	entry := types.ChunkStats{Chunk: cfg.ChunkSize, Overlap: cfg.ChunkOverlap}
	if err := s.stats.Set(filepath.Base(path), entry); err != nil {
		return 0, err
	}
	log.Info("indexed document", "file", filepath.Base(path), "chunks", len(chunks),
		"chunk_size", cfg.ChunkSize, "overlap", cfg.ChunkOverlap)
	return len(chunks), nil
}

// IndexFolder indexes every PDF in a directory, skipping other extensions
// silently. A file that fails to index is logged and skipped so one
// malformed PDF never aborts the run. Returns the number of files indexed.
func (s *Indexer) IndexFolder(ctx context.Context, dir string, cfg types.ChunkingConfig) (int, error) {
	// Parameter errors abort before any file work, same as IndexOne.
	if _, err := NewTextChunker(cfg.ChunkSize, cfg.ChunkOverlap); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	indexed := 0
	for _, entry := range entries {
		if entry.IsDir() || !utils.IsPDF(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := s.IndexOne(ctx, path, cfg); err != nil {
			log.Error("skipping document", "file", entry.Name(), "err", err)
			continue
		}
		indexed++
	}
	return indexed, nil
}
