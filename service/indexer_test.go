package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/phamtrung99/ragdex/store"
	"github.com/phamtrung99/ragdex/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader serves canned text units per path.
type fakeLoader struct {
	units map[string][]types.TextUnit
}

func (f *fakeLoader) Load(path string) ([]types.TextUnit, error) {
	units, ok := f.units[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrLoad, path)
	}
	return units, nil
}

// fakeEmbedder maps each text to a deterministic vector keyed by its length.
type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i], _ = f.Embed(ctx, text)
	}
	return vectors, nil
}

func pageUnit(text, page string) types.TextUnit {
	return types.TextUnit{
		Text:     text,
		Metadata: map[string]string{types.MetaPageLabel: page},
	}
}

func newTestIndexer(t *testing.T, loader *fakeLoader, embedder Embedder) (*Indexer, *store.Store, *StatsService) {
	t.Helper()
	dir := t.TempDir()
	indexStore, err := store.NewStore(filepath.Join(dir, "indexed"))
	require.NoError(t, err)
	stats := NewStatsService(filepath.Join(dir, "chunk_stats.json"), filepath.Join(dir, "pdf"))
	return NewIndexer(loader, embedder, indexStore, stats), indexStore, stats
}

func TestIndexOne(t *testing.T) {
	cfg := types.ChunkingConfig{ChunkSize: 512, ChunkOverlap: 50}

	t.Run("ShouldPersistArtifactsAndStats", func(t *testing.T) {
		loader := &fakeLoader{units: map[string][]types.TextUnit{
			"report.pdf": {pageUnit("some findings", "1"), pageUnit("more findings", "2")},
		}}
		indexer, indexStore, stats := newTestIndexer(t, loader, &fakeEmbedder{})

		chunks, err := indexer.IndexOne(context.Background(), "/data/report.pdf", cfg)
		require.NoError(t, err)
		assert.Equal(t, 2, chunks)

		idx, err := indexStore.Load("report")
		require.NoError(t, err)
		assert.Equal(t, 2, idx.Len())
		assert.Equal(t, []string{"report_0", "report_1"}, idx.IDs())

		entry, err := stats.Get("report.pdf")
		require.NoError(t, err)
		assert.Equal(t, types.ChunkStats{Chunk: 512, Overlap: 50}, entry)
	})
	t.Run("ShouldReplaceArtifactsOnReindex", func(t *testing.T) {
		loader := &fakeLoader{units: map[string][]types.TextUnit{
			"report.pdf": {pageUnit("first", "1"), pageUnit("second", "2"), pageUnit("third", "3")},
		}}
		indexer, indexStore, _ := newTestIndexer(t, loader, &fakeEmbedder{})

		_, err := indexer.IndexOne(context.Background(), "report.pdf", cfg)
		require.NoError(t, err)

		loader.units["report.pdf"] = []types.TextUnit{pageUnit("only page", "1")}
		chunks, err := indexer.IndexOne(context.Background(), "report.pdf", cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, chunks)

		idx, err := indexStore.Load("report")
		require.NoError(t, err)
		assert.Equal(t, 1, idx.Len())
	})
	t.Run("ShouldRejectInvalidChunkingBeforeWork", func(t *testing.T) {
		indexer, _, _ := newTestIndexer(t, &fakeLoader{}, &fakeEmbedder{})
		_, err := indexer.IndexOne(context.Background(), "report.pdf", types.ChunkingConfig{ChunkSize: 100, ChunkOverlap: 100})
		assert.Error(t, err)
	})
	t.Run("ShouldPropagateLoadFailure", func(t *testing.T) {
		indexer, _, _ := newTestIndexer(t, &fakeLoader{}, &fakeEmbedder{})
		_, err := indexer.IndexOne(context.Background(), "absent.pdf", cfg)
		assert.ErrorIs(t, err, types.ErrLoad)
	})
	t.Run("ShouldPropagateEmbeddingFailure", func(t *testing.T) {
		loader := &fakeLoader{units: map[string][]types.TextUnit{
			"report.pdf": {pageUnit("text", "1")},
		}}
		indexer, _, _ := newTestIndexer(t, loader, &fakeEmbedder{err: errors.New("quota exceeded")})
		_, err := indexer.IndexOne(context.Background(), "report.pdf", cfg)
		assert.Error(t, err)
	})
	t.Run("ShouldIndexDocumentWithNoExtractableText", func(t *testing.T) {
		loader := &fakeLoader{units: map[string][]types.TextUnit{"report.pdf": {}}}
		indexer, indexStore, _ := newTestIndexer(t, loader, &fakeEmbedder{})

		chunks, err := indexer.IndexOne(context.Background(), "report.pdf", cfg)
		require.NoError(t, err)
		assert.Equal(t, 0, chunks)

		idx, err := indexStore.Load("report")
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	})
}

func TestIndexFolder(t *testing.T) {
	cfg := types.ChunkingConfig{ChunkSize: 512, ChunkOverlap: 50}

	writeFiles := func(t *testing.T, dir string, names ...string) {
		t.Helper()
		for _, name := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
		}
	}

	t.Run("ShouldSkipFailingDocuments", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "good.pdf", "bad.pdf", "ignored.txt")

		loader := &fakeLoader{units: map[string][]types.TextUnit{
			"good.pdf": {pageUnit("usable text", "1")},
		}}
		indexer, indexStore, _ := newTestIndexer(t, loader, &fakeEmbedder{})

		indexed, err := indexer.IndexFolder(context.Background(), dir, cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, indexed)

		_, err = indexStore.Load("good")
		assert.NoError(t, err)
		_, err = indexStore.Load("bad")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
	t.Run("ShouldFailFastOnInvalidParameters", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "good.pdf")
		indexer, _, _ := newTestIndexer(t, &fakeLoader{}, &fakeEmbedder{})

		_, err := indexer.IndexFolder(context.Background(), dir, types.ChunkingConfig{ChunkSize: 10, ChunkOverlap: 20})
		assert.Error(t, err)
	})
	t.Run("ShouldFailOnUnreadableDirectory", func(t *testing.T) {
		indexer, _, _ := newTestIndexer(t, &fakeLoader{}, &fakeEmbedder{})
		_, err := indexer.IndexFolder(context.Background(), filepath.Join(t.TempDir(), "absent"), cfg)
		assert.Error(t, err)
	})
}
