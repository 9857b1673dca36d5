package testutil

import (
	"context"
	"sync"

	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// RecordingPublisher is an in-memory EventPublisher for tests.
// It records sent events and lets tests push events to listeners.
type RecordingPublisher struct {
	mu         sync.Mutex
	Sent       []events.Event
	Subscribed []types.BoardID
	SendErr    error
	Connected  bool
	Closed     bool
	notify     events.NotifyFunc
	incoming   chan events.Event
}

// NewRecordingPublisher creates a publisher whose Listen channel is buffered
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{incoming: make(chan events.Event, 16)}
}

var _ events.EventPublisher = (*RecordingPublisher)(nil)

func (p *RecordingPublisher) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Connected = true
	return nil
}

func (p *RecordingPublisher) SendEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SendErr != nil {
		return p.SendErr
	}
	p.Sent = append(p.Sent, event)
	return nil
}

func (p *RecordingPublisher) Listen(ctx context.Context) (<-chan events.Event, error) {
	return p.incoming, nil
}

func (p *RecordingPublisher) Subscribe(boardID types.BoardID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Subscribed = append(p.Subscribed, boardID)
	return nil
}

func (p *RecordingPublisher) SetNotifyFunc(fn events.NotifyFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = fn
}

func (p *RecordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

// Push delivers an event to Listen consumers
func (p *RecordingPublisher) Push(event events.Event) {
	p.incoming <- event
}

// Events returns a copy of the recorded events
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.Sent...)
}

// BoardsChanged returns the board ids of the recorded events, in order
func (p *RecordingPublisher) BoardsChanged() []types.BoardID {
	var ids []types.BoardID
	for _, e := range p.Events() {
		ids = append(ids, e.BoardID)
	}
	return ids
}

// Reset forgets recorded events
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = nil
}
