package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phamtrung99/ragdex/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStats(t *testing.T, pdfNames ...string) *StatsService {
	t.Helper()
	dir := t.TempDir()
	pdfDir := filepath.Join(dir, "pdf")
	require.NoError(t, os.MkdirAll(pdfDir, 0755))
	for _, name := range pdfNames {
		require.NoError(t, os.WriteFile(filepath.Join(pdfDir, name), []byte("x"), 0644))
	}
	return NewStatsService(filepath.Join(dir, "chunk_stats.json"), pdfDir)
}

func TestStatsLoad(t *testing.T) {
	t.Run("ShouldSeedDefaultsForEveryPDF", func(t *testing.T) {
		svc := newTestStats(t, "a.pdf", "b.pdf", "notes.txt")

		stats, err := svc.Load()
		require.NoError(t, err)
		assert.Len(t, stats, 2)
		assert.Equal(t, types.ChunkStats{Chunk: DefaultChunkSize, Overlap: DefaultChunkOverlap}, stats["a.pdf"])
		assert.Equal(t, types.ChunkStats{Chunk: DefaultChunkSize, Overlap: DefaultChunkOverlap}, stats["b.pdf"])

		// Seeding writes the file so the next load does not rescan.
		_, err = os.Stat(svc.path)
		assert.NoError(t, err)
	})
	t.Run("ShouldTolerateMissingPDFDirectory", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewStatsService(filepath.Join(dir, "chunk_stats.json"), filepath.Join(dir, "absent"))

		stats, err := svc.Load()
		require.NoError(t, err)
		assert.Empty(t, stats)
	})
	t.Run("ShouldRejectCorruptStatsFile", func(t *testing.T) {
		svc := newTestStats(t)
		require.NoError(t, os.WriteFile(svc.path, []byte("not json"), 0644))

		_, err := svc.Load()
		assert.Error(t, err)
	})
}

func TestStatsGet(t *testing.T) {
	svc := newTestStats(t, "a.pdf")

	t.Run("ShouldReturnRecordedEntry", func(t *testing.T) {
		require.NoError(t, svc.Set("a.pdf", types.ChunkStats{Chunk: 256, Overlap: 10}))
		entry, err := svc.Get("a.pdf")
		require.NoError(t, err)
		assert.Equal(t, types.ChunkStats{Chunk: 256, Overlap: 10}, entry)
	})
	t.Run("ShouldFallBackToDefaultsForUnknownFile", func(t *testing.T) {
		entry, err := svc.Get("unknown.pdf")
		require.NoError(t, err)
		assert.Equal(t, types.ChunkStats{Chunk: DefaultChunkSize, Overlap: DefaultChunkOverlap}, entry)
	})
}

func TestStatsSet(t *testing.T) {
	t.Run("ShouldPersistAcrossInstances", func(t *testing.T) {
		svc := newTestStats(t, "a.pdf")
		require.NoError(t, svc.Set("a.pdf", types.ChunkStats{Chunk: 1024, Overlap: 100}))

		again := NewStatsService(svc.path, svc.pdfDir)
		entry, err := again.Get("a.pdf")
		require.NoError(t, err)
		assert.Equal(t, types.ChunkStats{Chunk: 1024, Overlap: 100}, entry)
	})
	t.Run("ShouldKeepOtherEntries", func(t *testing.T) {
		svc := newTestStats(t, "a.pdf", "b.pdf")
		require.NoError(t, svc.Set("a.pdf", types.ChunkStats{Chunk: 256, Overlap: 0}))

		stats, err := svc.Load()
		require.NoError(t, err)
		assert.Equal(t, types.ChunkStats{Chunk: DefaultChunkSize, Overlap: DefaultChunkOverlap}, stats["b.pdf"])
	})
	t.Run("ShouldWriteReadableNonASCIINames", func(t *testing.T) {
		svc := newTestStats(t)
		require.NoError(t, svc.Set("bericht_übersicht.pdf", types.ChunkStats{Chunk: 512, Overlap: 50}))

		data, err := os.ReadFile(svc.path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "bericht_übersicht.pdf")
		assert.Contains(t, string(data), "  \"")
	})
}
