package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// ErrBroadcastFull is returned when the broadcast queue cannot take another event
var ErrBroadcastFull = errors.New("broadcast channel full")

// client represents a connected client to the daemon
type client struct {
	conn         net.Conn
	send         chan events.Message
	subscription types.BoardID
	lastPong     time.Time
	closed       bool
	mu           sync.Mutex // protects subscription, lastPong, closed and sends on send
	closeOnce    sync.Once
}

// Options tunes queue sizes and health checking
type Options struct {
	BroadcastBuffer int
	ClientBuffer    int
	PingInterval    time.Duration
	StaleAfter      time.Duration
	Logger          *slog.Logger
}

// DefaultOptions reads buffer sizes from the environment
func DefaultOptions() Options {
	return Options{
		BroadcastBuffer: getEnvInt("KANBOARD_DAEMON_BROADCAST_BUFFER", 100),
		ClientBuffer:    getEnvInt("KANBOARD_DAEMON_CLIENT_BUFFER", 10),
		PingInterval:    30 * time.Second,
		StaleAfter:      90 * time.Second,
		Logger:          slog.Default(),
	}
}

// Server relays board change events between kanboard processes
type Server struct {
	socketPath      string
	listener        net.Listener
	clients         map[*client]bool
	mu              sync.RWMutex
	ctx             context.Context
	cancel          context.CancelFunc
	broadcast       chan events.Event
	metrics         *Metrics
	sequenceCounter atomic.Int64
	opts            Options
	logger          *slog.Logger
	shutdownOnce    sync.Once
}

// getEnvInt reads an integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates a daemon server listening on socketPath
func NewServer(socketPath string, opts Options) (*Server, error) {
	defaults := DefaultOptions()
	if opts.BroadcastBuffer <= 0 {
		opts.BroadcastBuffer = defaults.BroadcastBuffer
	}
	if opts.ClientBuffer <= 0 {
		opts.ClientBuffer = defaults.ClientBuffer
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaults.PingInterval
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = defaults.StaleAfter
	}
	if opts.Logger == nil {
		opts.Logger = defaults.Logger
	}

	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		clients:    make(map[*client]bool),
		ctx:        ctx,
		cancel:     cancel,
		broadcast:  make(chan events.Event, opts.BroadcastBuffer),
		metrics:    NewMetrics(),
		opts:       opts,
		logger:     opts.Logger,
	}, nil
}

// Metrics returns the server's counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the accept, broadcast and health loops until ctx is done or
// Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("daemon starting", "socket_path", s.socketPath)

	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-combinedCtx.Done():
		}
	}()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	go s.broadcastLoop(combinedCtx)
	go s.monitorHealth(combinedCtx)

	var err error
	select {
	case <-combinedCtx.Done():
		s.logger.Info("daemon context cancelled, shutting down")
	case err = <-acceptErr:
		if err != nil {
			s.logger.Error("accept loop failed", "error", err)
		}
	}

	if shutdownErr := s.Shutdown(); shutdownErr != nil {
		return shutdownErr
	}
	return err
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// A deadline lets the loop notice cancellation
		if ul, ok := s.listener.(*net.UnixListener); ok {
			if err := ul.SetDeadline(time.Now().Add(time.Second)); err != nil {
				s.logger.Warn("setting listener deadline", "error", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil || s.ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:         conn,
			send:         make(chan events.Message, s.opts.ClientBuffer),
			subscription: events.AllBoards,
			lastPong:     time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()
		s.updateClientCount()

		s.logger.Debug("client connected", "clients", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop stamps sequence ids and fans events out to matching subscribers
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event := <-s.broadcast:
			event.SequenceID = s.sequenceCounter.Add(1)
			if event.Timestamp.IsZero() {
				event.Timestamp = time.Now()
			}
			s.metrics.IncRefreshesTotal()

			msg := events.Message{
				Version: events.ProtocolVersion,
				Type:    events.MessageEvent,
				Event:   &event,
			}

			for _, c := range s.snapshotClients() {
				c.mu.Lock()
				sub := c.subscription
				c.mu.Unlock()

				if !event.Matches(sub) {
					continue
				}
				if !s.sendToClient(c, msg) {
					s.logger.Warn("client send queue full, event dropped", "board_id", event.BoardID)
				}
			}
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		s.logger.Debug("client disconnected", "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			s.logger.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case events.MessageEvent:
			if msg.Event == nil {
				continue
			}
			s.metrics.IncEventsReceived()
			if err := s.Broadcast(*msg.Event); err != nil {
				s.logger.Warn("dropping event", "board_id", msg.Event.BoardID, "error", err)
			}

		case events.MessageSubscribe:
			if msg.Subscribe == nil {
				continue
			}
			c.mu.Lock()
			c.subscription = msg.Subscribe.BoardID
			c.mu.Unlock()
			s.logger.Debug("client subscribed", "board_id", msg.Subscribe.BoardID)

			s.sendToClient(c, events.Message{
				Version:   events.ProtocolVersion,
				Type:      events.MessageAck,
				Subscribe: msg.Subscribe,
			})

		case events.MessagePong:
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

// clientWriter sends queued messages to a client
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings clients and removes the ones that stopped answering
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(s.opts.PingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			s.pingClients()
			s.removeStaleClients(time.Now())
		}
	}
}

func (s *Server) pingClients() {
	ping := events.Message{
		Version: events.ProtocolVersion,
		Type:    events.MessagePing,
		Event:   &events.Event{Type: events.EventPing, Timestamp: time.Now()},
	}
	for _, c := range s.snapshotClients() {
		if !s.sendToClient(c, ping) {
			s.logger.Warn("failed to ping client, queue full")
		}
	}
}

func (s *Server) removeStaleClients(now time.Time) {
	for _, c := range s.snapshotClients() {
		c.mu.Lock()
		silent := now.Sub(c.lastPong)
		c.mu.Unlock()

		if silent > s.opts.StaleAfter {
			s.logger.Info("removing stale client", "last_pong_ago", silent)
			s.removeClient(c)
		}
	}
}

// Broadcast queues an event for delivery (non-blocking)
func (s *Server) Broadcast(event events.Event) error {
	if s.ctx.Err() != nil {
		return net.ErrClosed
	}
	select {
	case s.broadcast <- event:
		return nil
	default:
		s.metrics.IncEventsDropped()
		return ErrBroadcastFull
	}
}

// Shutdown closes the listener and every client, and removes the socket file
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		s.logger.Info("shutting down daemon")

		s.cancel()

		if s.listener != nil {
			if err := s.listener.Close(); err != nil {
				s.logger.Warn("closing listener", "error", err)
			}
		}

		for _, c := range s.snapshotClients() {
			s.removeClient(c)
		}

		if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove socket file", "error", err)
		}
	})

	return nil
}

func (s *Server) snapshotClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	return clients
}

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

// removeClient unregisters c and closes its connection and queue
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	c.closeOnce.Do(func() {
		if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Debug("closing client connection", "error", err)
		}
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
	})

	s.updateClientCount()
}

// sendToClient queues msg without blocking. It reports false when the
// queue is full or the client is gone.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- msg:
		s.metrics.IncEventsSent()
		return true
	default:
		s.metrics.IncEventsDropped()
		return false
	}
}
