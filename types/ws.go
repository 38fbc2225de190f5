package types

import "encoding/json"

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketAsk        = "ask"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketAnswer     = "answer"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketProcessingPayload struct {
	Message string `json:"message"`
}
