package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/phamtrung99/ragdex/store"
	"github.com/phamtrung99/ragdex/types"
)

// Retriever answers queries against one document's persisted index.
type Retriever struct {
	embedder Embedder
	store    *store.Store
}

func NewRetriever(embedder Embedder, indexStore *store.Store) *Retriever {
	return &Retriever{embedder: embedder, store: indexStore}
}

// Query embeds the query text, searches the document's index and
// reconstructs full result records. This is the retrieval boundary: a
// missing or corrupt index and embedding failures are logged and yield an
// empty sequence instead of an error. A slot that cannot be resolved through
// the reverse map produces a placeholder record so the sequence length stays
// stable even under data corruption.
func (r *Retriever) Query(ctx context.Context, baseName, query string, topK int) []types.ResultRecord {
	idx, err := r.store.Load(baseName)
	if err != nil {
		log.Error("query failed", "file", baseName, "err", err)
		return nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		log.Error("failed to embed query", "file", baseName, "err", err)
		return nil
	}

	hits := idx.Search(queryVec, topK)
	results := make([]types.ResultRecord, 0, len(hits))
	for _, hit := range hits {
		results = append(results, resolveHit(idx, hit))
	}
	return results
}

func resolveHit(idx *store.DocumentIndex, hit store.Hit) types.ResultRecord {
	id, ok := idx.IDForSlot(hit.Slot)
	if !ok {
		return missingRecord(hit.Slot)
	}
	rec, ok := idx.Record(id)
	if !ok {
		return missingRecord(hit.Slot)
	}
	return types.ResultRecord{
		ID:         id,
		Text:       rec.Text,
		PageNumber: types.Page(rec.Metadata),
		Score:      hit.Score,
		Metadata:   rec.Metadata,
	}
}

func missingRecord(slot int) types.ResultRecord {
	return types.ResultRecord{
		ID:         fmt.Sprintf("missing_%d", slot),
		Text:       fmt.Sprintf("Content not found for slot %d", slot),
		PageNumber: types.PageUnknown,
		Score:      0,
		Metadata:   map[string]string{},
	}
}
