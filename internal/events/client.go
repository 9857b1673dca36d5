package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/kanboard/internal/types"
)

var (
	ErrNilClient    = errors.New("event client is nil")
	ErrNotConnected = errors.New("not connected to daemon")
	ErrQueueFull    = errors.New("event queue full")
	ErrClientClosed = errors.New("event client closed")
)

// DefaultDebounce is the batching window used when none is configured
const DefaultDebounce = 100 * time.Millisecond

// Client represents a connection to the kanboard daemon for receiving live updates.
// It handles event sending, receiving, batching, reconnection, and subscriptions.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching configuration
	eventQueue   chan Event
	debounce     time.Duration
	closed       bool // Prevent double-close panics
	batcherStart sync.Once

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	// Subscription state, replayed on reconnect
	currentBoard types.BoardID

	// Event tracking
	lastSequence int64

	notify NotifyFunc

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	// Batching goroutine
	batcherDone chan struct{}
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithDebounce sets the batching window
func WithDebounce(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithReconnect sets the reconnection budget and the first backoff delay
func WithReconnect(maxRetries int, baseDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// NewClient creates a new event client but does not connect.
// The socket path should be the full path to the Unix domain socket.
func NewClient(socketPath string, opts ...ClientOption) (*Client, error) {
	if socketPath == "" {
		return nil, errors.New("socket path is empty")
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    DefaultDebounce,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetNotifyFunc installs the callback for connection status messages
func (c *Client) SetNotifyFunc(fn NotifyFunc) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

func (c *Client) notifyUser(level, message string) {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn(level, message)
	}
}

// Connect establishes a connection to the daemon socket and subscribes to
// the current board (all boards until Subscribe is called).
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	msg := Message{
		Version:   ProtocolVersion,
		Type:      MessageSubscribe,
		Subscribe: &SubscribeMessage{BoardID: c.currentBoard},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("error closing connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	c.batcherStart.Do(func() { go c.startBatcher() })

	return nil
}

// SendEvent queues an event to be sent to the daemon.
// Events are batched and sent in bursts within the debounce window.
// Returns error if the queue is full (non-blocking send).
func (c *Client) SendEvent(event Event) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startBatcher runs in a goroutine and batches events from the queue.
// It sends a single event every debounce duration if any events are pending.
// If events from multiple boards are batched together, AllBoards is sent.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending bool
	var boardID types.BoardID

	add := func(event Event) {
		if !pending {
			pending = true
			boardID = event.BoardID
		} else if boardID != event.BoardID {
			boardID = AllBoards
		}
	}

	flushPending := func() {
		if !pending {
			return
		}
		if err := c.sendToSocket(Event{
			Type:      EventBoardChanged,
			BoardID:   boardID,
			Timestamp: time.Now(),
		}); err != nil && !isConnectionError(err) {
			slog.Error("failed to send batched event", "error", err)
		}
		pending = false
	}

	for {
		select {
		case <-c.ctx.Done():
			flushPending()
			return

		case event, ok := <-c.eventQueue:
			if !ok {
				flushPending()
				return
			}
			add(event)

			// drain whatever else was queued in this window
		drainLoop:
			for {
				select {
				case evt, ok := <-c.eventQueue:
					if !ok {
						break drainLoop
					}
					add(evt)
				default:
					break drainLoop
				}
			}

		case <-ticker.C:
			flushPending()
		}
	}
}

// sendToSocket sends an event to the daemon socket.
func (c *Client) sendToSocket(event Event) error {
	msgType := MessageEvent
	if event.Type == EventPong {
		msgType = MessagePong
	}
	return c.encode(Message{Version: ProtocolVersion, Type: msgType, Event: &event})
}

func (c *Client) encode(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	// short write deadline to detect dead connections
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	return c.encoder.Encode(msg)
}

// Listen starts listening for events from the daemon.
// It returns a channel that receives events and handles reconnection automatically.
// The channel is closed when context is done or reconnection fails.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	if c == nil {
		close(eventChan)
		return eventChan, ErrNilClient
	}
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

// listenLoop reads events from the daemon and handles reconnection.
func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.ctx.Done():
			return
		default:
		}

		err := c.readEvents(ctx, eventChan)
		if err == nil || ctx.Err() != nil || c.ctx.Err() != nil {
			return
		}

		slog.Warn("connection to daemon lost, reconnecting", "error", err)
		c.notifyUser("warning", "Connection to daemon lost, reconnecting")

		if c.reconnect(ctx) {
			c.notifyUser("info", "Reconnected to daemon")
			continue
		}

		slog.Error("failed to reconnect to daemon, giving up", "attempts", c.maxRetries)
		c.notifyUser("error", "Live updates unavailable: daemon unreachable")
		return
	}
}

// readEvents reads messages from the socket and sends them to the event channel.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		// read deadline detects hung connections; the daemon pings more often
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case MessageEvent:
			if msg.Event == nil {
				continue
			}
			// drop replays of events already delivered
			if msg.Event.SequenceID > 0 && msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			if msg.Event.SequenceID > 0 {
				c.lastSequence = msg.Event.SequenceID
			}
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case MessagePing:
			if err := c.sendToSocket(Event{Type: EventPong, Timestamp: time.Now()}); err != nil && !isConnectionError(err) {
				slog.Error("failed to send pong", "error", err)
			}
		}
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, ErrNotConnected) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset")
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
// It tries up to maxRetries times, doubling the delay each time.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.conn != nil {
				if err := c.conn.Close(); err != nil && !isConnectionError(err) {
					slog.Error("error closing connection during reconnect", "error", err)
				}
				c.conn = nil
			}
			c.mu.Unlock()

			if err := c.Connect(ctx); err == nil {
				slog.Info("reconnected to daemon", "attempt", i+1, "max_retries", c.maxRetries)
				return true
			}

			slog.Debug("reconnection attempt failed", "attempt", i+1, "max_retries", c.maxRetries, "retry_in", delay)
			delay *= 2 // 1s, 2s, 4s, 8s, 16s
		}
	}

	return false
}

// Subscribe changes the subscription to a specific board.
// AllBoards subscribes to every board.
func (c *Client) Subscribe(boardID types.BoardID) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	c.currentBoard = boardID
	c.mu.Unlock()

	return c.encode(Message{
		Version:   ProtocolVersion,
		Type:      MessageSubscribe,
		Subscribe: &SubscribeMessage{BoardID: boardID},
	})
}

// Close closes the connection to the daemon and stops all goroutines.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	// lets the batcher flush pending events before exiting
	close(c.eventQueue)
	c.mu.Unlock()

	// a batcher that never started has nothing to flush
	c.batcherStart.Do(func() { close(c.batcherDone) })
	<-c.batcherDone

	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}

	return nil
}
