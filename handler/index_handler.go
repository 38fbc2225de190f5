package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/phamtrung99/ragdex/service"
	"github.com/phamtrung99/ragdex/store"
	"github.com/phamtrung99/ragdex/types"
)

type IndexHandler struct {
	indexer *service.Indexer
	stats   *service.StatsService
	store   *store.Store
	pdfDir  string
}

func NewIndexHandler(indexer *service.Indexer, stats *service.StatsService, indexStore *store.Store, pdfDir string) *IndexHandler {
	return &IndexHandler{
		indexer: indexer,
		stats:   stats,
		store:   indexStore,
		pdfDir:  pdfDir,
	}
}

// HandleDocuments lists the base names of every document with a complete
// index artifact pair.
func (h *IndexHandler) HandleDocuments(c *gin.Context) {
	names, err := h.store.List()
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	sendSuccess(c, names)
}

// HandleStats returns the recorded chunking parameters per document.
func (h *IndexHandler) HandleStats(c *gin.Context) {
	stats, err := h.stats.Load()
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	sendSuccess(c, stats)
}

// HandleReindex rebuilds one document's index with the requested chunking
// parameters and records them for later runs.
func (h *IndexHandler) HandleReindex(c *gin.Context) {
	var req types.ReindexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.File == "" {
		sendError(c, http.StatusBadRequest, errors.New("file is required"))
		return
	}
	cfg, err := resolveChunking(req.ChunkSize, req.Overlap)
	if err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	path := filepath.Join(h.pdfDir, req.File)
	if filepath.Ext(req.File) == "" {
		path += ".pdf"
	}
	chunks, err := h.indexer.IndexOne(c.Request.Context(), path, cfg)
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	sendSuccess(c, types.ReindexResponse{
		File:      req.File,
		Chunks:    chunks,
		ChunkSize: cfg.ChunkSize,
		Overlap:   cfg.ChunkOverlap,
	})
}

func resolveChunking(chunkSize, overlap int) (types.ChunkingConfig, error) {
	if chunkSize == 0 {
		chunkSize = service.DefaultChunkSize
	}
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return types.ChunkingConfig{}, fmt.Errorf("chunk_size must be between %d and %d", MinChunkSize, MaxChunkSize)
	}
	if overlap < MinOverlap || overlap > MaxOverlap {
		return types.ChunkingConfig{}, fmt.Errorf("overlap must be between %d and %d", MinOverlap, MaxOverlap)
	}
	return types.ChunkingConfig{ChunkSize: chunkSize, ChunkOverlap: overlap}, nil
}
