package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phamtrung99/ragdex/service"
	"github.com/phamtrung99/ragdex/types"
)

type QueryHandler struct {
	retriever   *service.Retriever
	answer      *service.AnswerService
	defaultTopK int
}

func NewQueryHandler(retriever *service.Retriever, answer *service.AnswerService, defaultTopK int) *QueryHandler {
	return &QueryHandler{
		retriever:   retriever,
		answer:      answer,
		defaultTopK: defaultTopK,
	}
}

// HandleQuery returns the ranked records for one question against one
// indexed document, without answer synthesis.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	topK, err := h.resolveTopK(req.TopK)
	if err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}
	if req.File == "" || req.Query == "" {
		sendError(c, http.StatusBadRequest, errors.New("file and query are required"))
		return
	}

	results := h.retriever.Query(c.Request.Context(), req.File, req.Query, topK)
	sendSuccess(c, types.QueryResponse{
		File:    req.File,
		Results: results,
	})
}

// HandleAsk runs retrieval and answer synthesis end to end.
func (h *QueryHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	topK, err := h.resolveTopK(req.TopK)
	if err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}
	if req.File == "" || req.Query == "" {
		sendError(c, http.StatusBadRequest, errors.New("file and query are required"))
		return
	}

	results := h.retriever.Query(c.Request.Context(), req.File, req.Query, topK)
	resp := h.answer.Answer(c.Request.Context(), req.Query, results)
	sendSuccess(c, resp)
}

func (h *QueryHandler) resolveTopK(topK int) (int, error) {
	if topK == 0 {
		return h.defaultTopK, nil
	}
	if topK < MinTopK || topK > MaxTopK {
		return 0, fmt.Errorf("top_k must be between %d and %d", MinTopK, MaxTopK)
	}
	return topK, nil
}
