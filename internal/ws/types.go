package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// viewer -> server
	MessageTypeClick  MessageType = "click"
	MessageTypeSelect MessageType = "select"
	MessageTypeRemove MessageType = "remove"
	MessageTypeReset  MessageType = "reset"

	// server -> viewer
	MessageTypeBoardState MessageType = "boardState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SquarePayload carries the square a click, select or remove message refers to.
type SquarePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ErrorPayload is sent back when a viewer message could not be handled.
type ErrorPayload struct {
	Error string `json:"error"`
}
