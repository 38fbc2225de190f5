package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/phamtrung99/ragdex/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextChunker(t *testing.T) {
	t.Run("ShouldAcceptValidParameters", func(t *testing.T) {
		_, err := NewTextChunker(512, 50)
		assert.NoError(t, err)
	})
	t.Run("ShouldRejectNonPositiveChunkSize", func(t *testing.T) {
		_, err := NewTextChunker(0, 0)
		assert.Error(t, err)
	})
	t.Run("ShouldRejectNegativeOverlap", func(t *testing.T) {
		_, err := NewTextChunker(100, -1)
		assert.Error(t, err)
	})
	t.Run("ShouldRejectOverlapEqualToChunkSize", func(t *testing.T) {
		_, err := NewTextChunker(100, 100)
		assert.Error(t, err)
	})
	t.Run("ShouldRejectOverlapGreaterThanChunkSize", func(t *testing.T) {
		_, err := NewTextChunker(100, 200)
		assert.Error(t, err)
	})
}

func TestChunk(t *testing.T) {
	t.Run("ShouldNumberChunksAcrossUnits", func(t *testing.T) {
		chunker, err := NewTextChunker(40, 0)
		require.NoError(t, err)

		units := []types.TextUnit{
			{
				Text:     strings.Repeat("first page sentence. ", 8),
				Metadata: map[string]string{types.MetaPageLabel: "1"},
			},
			{
				Text:     strings.Repeat("second page sentence. ", 8),
				Metadata: map[string]string{types.MetaPageLabel: "2"},
			},
		}
		chunks, err := chunker.Chunk("report", units)
		require.NoError(t, err)
		require.Greater(t, len(chunks), 2)

		for i, chunk := range chunks {
			assert.Equal(t, fmt.Sprintf("report_%d", i), chunk.ID)
			assert.NotEmpty(t, chunk.Text)
		}
		assert.Equal(t, "1", chunks[0].Metadata[types.MetaPageLabel])
		assert.Equal(t, "2", chunks[len(chunks)-1].Metadata[types.MetaPageLabel])
	})
	t.Run("ShouldReturnEmptyForEmptyInput", func(t *testing.T) {
		chunker, err := NewTextChunker(512, 50)
		require.NoError(t, err)

		chunks, err := chunker.Chunk("report", nil)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
	t.Run("ShouldDropWhitespaceOnlySegments", func(t *testing.T) {
		chunker, err := NewTextChunker(512, 50)
		require.NoError(t, err)

		chunks, err := chunker.Chunk("report", []types.TextUnit{{Text: "   \n\n   "}})
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
	t.Run("ShouldCopyMetadataPerChunk", func(t *testing.T) {
		chunker, err := NewTextChunker(512, 50)
		require.NoError(t, err)

		meta := map[string]string{types.MetaPageLabel: "7"}
		chunks, err := chunker.Chunk("report", []types.TextUnit{{Text: "short text", Metadata: meta}})
		require.NoError(t, err)
		require.Len(t, chunks, 1)

		chunks[0].Metadata[types.MetaPageLabel] = "changed"
		assert.Equal(t, "7", meta[types.MetaPageLabel])
	})
}
