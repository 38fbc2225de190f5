package service

import (
	"fmt"
	"strings"

	"github.com/phamtrung99/ragdex/types"
	"github.com/tmc/langchaingo/textsplitter"
)

// TextChunker splits extracted text units into overlapping chunks and
// assigns each chunk its "{basename}_{position}" identifier. The split
// itself is delegated to the recursive character splitter; this type owns
// the identifier contract and parameter validation.
type TextChunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewTextChunker validates the chunking parameters. Overlap must be strictly
// smaller than the chunk size; the degenerate case is rejected here instead
// of producing undefined splitter behavior.
func NewTextChunker(chunkSize, chunkOverlap int) (*TextChunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be greater than zero, got %d", chunkSize)
	}
	if chunkOverlap < 0 {
		return nil, fmt.Errorf("chunk overlap cannot be negative, got %d", chunkOverlap)
	}
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", chunkOverlap, chunkSize)
	}
	return &TextChunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}, nil
}

// Chunk splits the units of one document in order. Position runs across all
// units so chunk IDs are "{baseName}_0" .. "{baseName}_{N-1}" with no gaps
// or duplicates within one run. Empty input produces an empty sequence.
func (c *TextChunker) Chunk(baseName string, units []types.TextUnit) ([]types.Chunk, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(c.chunkSize),
		textsplitter.WithChunkOverlap(c.chunkOverlap),
	)
	var chunks []types.Chunk
	pos := 0
	for _, unit := range units {
		segments, err := splitter.SplitText(unit.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to split text: %w", err)
		}
		for _, segment := range segments {
			text := strings.TrimSpace(segment)
			if text == "" {
				continue
			}
			metadata := make(map[string]string, len(unit.Metadata))
			for k, v := range unit.Metadata {
				metadata[k] = v
			}
			chunks = append(chunks, types.Chunk{
				ID:       fmt.Sprintf("%s_%d", baseName, pos),
				Text:     text,
				Metadata: metadata,
			})
			pos++
		}
	}
	return chunks, nil
}
