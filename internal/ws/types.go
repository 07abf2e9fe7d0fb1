package ws

import (
	"encoding/json"
)

// MessageType names the kind of payload carried by a Message.
type MessageType string

const (
	// requests
	MessageTypeBestMove   MessageType = "bestMove"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeAllMoves   MessageType = "allMoves"
	MessageTypeApplyMove  MessageType = "applyMove"

	// replies
	MessageTypeAnalysis   MessageType = "analysis"
	MessageTypeMoves      MessageType = "moves"
	MessageTypeMoveResult MessageType = "moveResult"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for everything sent over /ws/analysis. A reply
// carries the ID of the request it answers.
type Message struct {
	ID      string          `json:"id,omitempty"`
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(id string, t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{ID: id, Type: t, Payload: data}, nil
}

func NewError(id string, err error) Message {
	// a struct of one string always marshals
	msg, _ := NewMessage(id, MessageTypeError, ErrorPayload{Error: err.Error()})
	return msg
}
