package store

import (
	"fmt"
	"sort"

	"github.com/phamtrung99/ragdex/types"
)

// ChunkRecord is the persisted metadata entry of one chunk. Slot is the
// position of the chunk's vector inside the flat index and joins the record
// back to its embedding.
type ChunkRecord struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
	Slot     int               `json:"slot"`
}

// Hit is one search match: the slot of the stored vector and its inner
// product against the query.
type Hit struct {
	Slot  int
	Score float32
}

// DocumentIndex is a flat inner-product index over one document: vectors in
// insertion order plus a metadata map keyed by chunk ID. Exactly one record
// exists per vector and slots form a permutation of 0..N-1.
type DocumentIndex struct {
	dimension int
	vectors   [][]float32
	records   map[string]ChunkRecord
	slotIDs   []string
}

// Build constructs an index from parallel chunk and vector slices. Slot
// assignment follows insertion order. An empty input produces a valid index
// that searches to no hits.
func Build(chunks []types.Chunk, vectors [][]float32) (*DocumentIndex, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}
	idx := &DocumentIndex{
		records: make(map[string]ChunkRecord, len(chunks)),
		slotIDs: make([]string, len(chunks)),
	}
	for i, vec := range vectors {
		if i == 0 {
			idx.dimension = len(vec)
		}
		if len(vec) != idx.dimension {
			return nil, fmt.Errorf("vector %d dimension mismatch: got %d want %d", i, len(vec), idx.dimension)
		}
		chunk := chunks[i]
		if _, exists := idx.records[chunk.ID]; exists {
			return nil, fmt.Errorf("duplicate chunk id %q", chunk.ID)
		}
		idx.vectors = append(idx.vectors, append([]float32(nil), vec...))
		idx.records[chunk.ID] = ChunkRecord{
			Text:     chunk.Text,
			Metadata: chunk.Metadata,
			Slot:     i,
		}
		idx.slotIDs[i] = chunk.ID
	}
	return idx, nil
}

// Len returns the number of stored vectors.
func (idx *DocumentIndex) Len() int { return len(idx.vectors) }

// Dimension returns the embedding dimension, 0 for an empty index.
func (idx *DocumentIndex) Dimension() int { return idx.dimension }

// Search returns up to topK hits ordered by descending inner product. Ties
// break on ascending slot so results are deterministic. Fewer than topK
// stored vectors yield exactly that many hits.
func (idx *DocumentIndex) Search(query []float32, topK int) []Hit {
	if topK <= 0 || len(idx.vectors) == 0 {
		return nil
	}
	hits := make([]Hit, len(idx.vectors))
	for slot, vec := range idx.vectors {
		hits[slot] = Hit{Slot: slot, Score: dot(query, vec)}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score == hits[j].Score {
			return hits[i].Slot < hits[j].Slot
		}
		return hits[i].Score > hits[j].Score
	})
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK]
}

// IDForSlot resolves a slot back to its chunk ID through the reverse map.
func (idx *DocumentIndex) IDForSlot(slot int) (string, bool) {
	if slot < 0 || slot >= len(idx.slotIDs) {
		return "", false
	}
	id := idx.slotIDs[slot]
	if id == "" {
		return "", false
	}
	return id, true
}

// Record returns the metadata entry of a chunk ID.
func (idx *DocumentIndex) Record(id string) (ChunkRecord, bool) {
	rec, ok := idx.records[id]
	return rec, ok
}

// IDs returns all chunk IDs in slot order.
func (idx *DocumentIndex) IDs() []string {
	return append([]string(nil), idx.slotIDs...)
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
