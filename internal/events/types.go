package events

import (
	"time"

	"github.com/thenoetrevino/kanboard/internal/types"
)

// ProtocolVersion is carried by every wire message
const ProtocolVersion = 1

// AllBoards subscribes to, or announces changes on, every board
const AllBoards types.BoardID = ""

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event represents a board change notification
type Event struct {
	Type       EventType     `json:"type"`
	BoardID    types.BoardID `json:"board_id,omitempty"` // which board was modified; AllBoards when several were
	Timestamp  time.Time     `json:"timestamp"`
	SequenceID int64         `json:"sequence_id,omitempty"` // monotonically increasing, assigned by the daemon
}

// SubscribeMessage is sent by clients to subscribe to a board's updates
type SubscribeMessage struct {
	BoardID types.BoardID `json:"board_id"`
}

// Wire message types
const (
	MessageEvent     = "event"
	MessageSubscribe = "subscribe"
	MessagePing      = "ping"
	MessagePong      = "pong"
	MessageAck       = "ack"
)

// Message wraps events and control messages for wire protocol
type Message struct {
	Version   int               `json:"version"`
	Type      string            `json:"type"`
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}

// Matches reports whether a subscriber to boardID should receive e
func (e Event) Matches(boardID types.BoardID) bool {
	return boardID == AllBoards || e.BoardID == AllBoards || e.BoardID == boardID
}
