package service

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/phamtrung99/ragdex/store"
	"github.com/phamtrung99/ragdex/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bagEmbedder maps text to its unit-normalized letter histogram, so the
// inner product behaves like cosine similarity and a verbatim phrase scores
// highest against its own chunk.
type bagEmbedder struct{}

func (bagEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 26)
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
		if r >= 'A' && r <= 'Z' {
			vec[r-'A']++
		}
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

func (e bagEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i], _ = e.Embed(ctx, text)
	}
	return vectors, nil
}

func TestIndexThenQueryEndToEnd(t *testing.T) {
	dir := t.TempDir()
	indexStore, err := store.NewStore(filepath.Join(dir, "indexed"))
	require.NoError(t, err)
	stats := NewStatsService(filepath.Join(dir, "chunk_stats.json"), filepath.Join(dir, "pdf"))

	pageOne := "alpha beta gamma delta describes the anatomy of the inner ear"
	pageTwo := "zulu yankee xray completely unrelated budget figures and tables"
	loader := &fakeLoader{units: map[string][]types.TextUnit{
		"notes.pdf": {
			{Text: pageOne, Metadata: map[string]string{types.MetaPageLabel: "1"}},
			{Text: pageTwo, Metadata: map[string]string{types.MetaPageLabel: "2"}},
		},
	}}

	indexer := NewIndexer(loader, bagEmbedder{}, indexStore, stats)
	chunks, err := indexer.IndexOne(context.Background(), "notes.pdf", types.ChunkingConfig{ChunkSize: 128, ChunkOverlap: 0})
	require.NoError(t, err)
	require.GreaterOrEqual(t, chunks, 2)

	retriever := NewRetriever(bagEmbedder{}, indexStore)
	results := retriever.Query(context.Background(), "notes", pageOne, 3)
	require.NotEmpty(t, results)

	assert.Equal(t, "1", results[0].PageNumber)
	for _, r := range results[1:] {
		assert.GreaterOrEqual(t, results[0].Score, r.Score)
	}
}
