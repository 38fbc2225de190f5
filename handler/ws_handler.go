package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/phamtrung99/ragdex/service"
	"github.com/phamtrung99/ragdex/types"
)

const (
	wsReadLimit    = 64 * 1024
	wsReadDeadline = 120 * time.Second
)

// WebsocketHandler answers questions over a long-lived connection so a
// client can watch retrieval and synthesis progress.
type WebsocketHandler struct {
	retriever   *service.Retriever
	answer      *service.AnswerService
	defaultTopK int
	upgrader    websocket.Upgrader
}

func NewWebsocketHandler(retriever *service.Retriever, answer *service.AnswerService, defaultTopK int) *WebsocketHandler {
	return &WebsocketHandler{
		retriever:   retriever,
		answer:      answer,
		defaultTopK: defaultTopK,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *WebsocketHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("websocket read failed", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			h.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			h.write(conn, types.WebsocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketAsk:
			h.handleAsk(r, conn, req.Payload)
		default:
			h.writeError(conn, fmt.Sprintf("unknown message type %q", req.Type))
		}
	}
}

func (h *WebsocketHandler) handleAsk(r *http.Request, conn *websocket.Conn, payload json.RawMessage) {
	var req types.AskRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		h.writeError(conn, "invalid ask payload")
		return
	}
	if req.File == "" || req.Query == "" {
		h.writeError(conn, "file and query are required")
		return
	}
	topK := req.TopK
	if topK == 0 {
		topK = h.defaultTopK
	}
	if topK < MinTopK || topK > MaxTopK {
		h.writeError(conn, fmt.Sprintf("top_k must be between %d and %d", MinTopK, MaxTopK))
		return
	}

	h.write(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketProcessing,
		Payload: types.WebsocketProcessingPayload{Message: fmt.Sprintf("searching %s", req.File)},
	})
	results := h.retriever.Query(r.Context(), req.File, req.Query, topK)

	h.write(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketProcessing,
		Payload: types.WebsocketProcessingPayload{Message: "synthesizing answer"},
	})
	resp := h.answer.Answer(r.Context(), req.Query, results)

	h.write(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketAnswer,
		Payload: resp,
	})
}

func (h *WebsocketHandler) write(conn *websocket.Conn, resp types.WebsocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Error("websocket write failed", "error", err)
	}
}

func (h *WebsocketHandler) writeError(conn *websocket.Conn, message string) {
	h.write(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebsocketProcessingPayload{Message: message},
	})
}
