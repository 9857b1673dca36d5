package daemon

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/kanboard/internal/events"
	"github.com/thenoetrevino/kanboard/internal/types"
)

// Test helpers to avoid import cycle with testutil

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func setupTestDaemon(t *testing.T) (*Server, string) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "test-kanboard.sock")

	server, err := NewServer(socketPath, quietOptions())
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = server.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			return server, socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("Timeout waiting for daemon socket")
	return nil, ""
}

type rawClient struct {
	conn    net.Conn
	encoder *json.Encoder
	decoder *json.Decoder
}

func connectRawClient(t *testing.T, socketPath string) *rawClient {
	t.Helper()

	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &rawClient{conn: conn, encoder: json.NewEncoder(conn), decoder: json.NewDecoder(conn)}
}

func (c *rawClient) send(t *testing.T, msg events.Message) {
	t.Helper()
	msg.Version = events.ProtocolVersion
	if err := c.encoder.Encode(msg); err != nil {
		t.Fatalf("Failed to send %s: %v", msg.Type, err)
	}
}

// subscribe sends a subscription and waits for the daemon's ack
func (c *rawClient) subscribe(t *testing.T, boardID types.BoardID) {
	t.Helper()
	c.send(t, events.Message{Type: events.MessageSubscribe, Subscribe: &events.SubscribeMessage{BoardID: boardID}})

	msg, ok := c.read(t, 2*time.Second)
	if !ok {
		t.Fatal("no ack for subscribe")
	}
	if msg.Type != events.MessageAck || msg.Subscribe == nil || msg.Subscribe.BoardID != boardID {
		t.Fatalf("expected ack for %q, got %+v", boardID, msg)
	}
}

func (c *rawClient) publish(t *testing.T, boardID types.BoardID) {
	t.Helper()
	c.send(t, events.Message{
		Type:  events.MessageEvent,
		Event: &events.Event{Type: events.EventBoardChanged, BoardID: boardID, Timestamp: time.Now()},
	})
}

// read returns the next message, or false if none arrives within timeout.
// A timeout breaks the decoder for good.
func (c *rawClient) read(t *testing.T, timeout time.Duration) (events.Message, bool) {
	t.Helper()
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	var msg events.Message
	if err := c.decoder.Decode(&msg); err != nil {
		return events.Message{}, false
	}
	return msg, true
}

// nextEvent skips pings until an event arrives
func (c *rawClient) nextEvent(t *testing.T, timeout time.Duration) (*events.Event, bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		msg, ok := c.read(t, time.Until(deadline))
		if !ok {
			return nil, false
		}
		if msg.Type == events.MessageEvent && msg.Event != nil {
			return msg.Event, true
		}
	}
	return nil, false
}

// ============================================================================
// Server Tests
// ============================================================================

func TestNewServer_RemovesStaleSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "stale.sock")
	if err := os.WriteFile(socketPath, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}

	server, err := NewServer(socketPath, quietOptions())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	_ = server.Shutdown()

	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Errorf("socket file should be removed on shutdown, stat err = %v", err)
	}
}

func TestNewServer_AppliesDefaults(t *testing.T) {
	server, err := NewServer(filepath.Join(t.TempDir(), "d.sock"), Options{})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if server.opts.ClientBuffer <= 0 || server.opts.BroadcastBuffer <= 0 {
		t.Errorf("buffers not defaulted: %+v", server.opts)
	}
	if server.opts.PingInterval != 30*time.Second || server.opts.StaleAfter != 90*time.Second {
		t.Errorf("health intervals not defaulted: %+v", server.opts)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("KANBOARD_TEST_INT", "42")
	if got := getEnvInt("KANBOARD_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}

	t.Setenv("KANBOARD_TEST_INT", "-3")
	if got := getEnvInt("KANBOARD_TEST_INT", 7); got != 7 {
		t.Errorf("negative value should fall back, got %d", got)
	}

	t.Setenv("KANBOARD_TEST_INT", "abc")
	if got := getEnvInt("KANBOARD_TEST_INT", 7); got != 7 {
		t.Errorf("invalid value should fall back, got %d", got)
	}
}

func TestBroadcast_ReachesSubscribers(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	publisher := connectRawClient(t, socketPath)
	subscriber := connectRawClient(t, socketPath)
	subscriber.subscribe(t, "board-1")

	publisher.publish(t, "board-1")

	evt, ok := subscriber.nextEvent(t, 2*time.Second)
	if !ok {
		t.Fatal("subscriber did not receive event")
	}
	if evt.BoardID != "board-1" || evt.Type != events.EventBoardChanged {
		t.Errorf("unexpected event %+v", evt)
	}
	if evt.SequenceID != 1 {
		t.Errorf("SequenceID = %d, want 1", evt.SequenceID)
	}
}

func TestBroadcast_FiltersByBoard(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	publisher := connectRawClient(t, socketPath)
	other := connectRawClient(t, socketPath)
	other.subscribe(t, "board-2")
	everyone := connectRawClient(t, socketPath)
	everyone.subscribe(t, events.AllBoards)

	publisher.publish(t, "board-1")

	if _, ok := everyone.nextEvent(t, 2*time.Second); !ok {
		t.Fatal("AllBoards subscriber should receive every event")
	}
	if evt, ok := other.nextEvent(t, 300*time.Millisecond); ok {
		t.Errorf("board-2 subscriber received board-1 event: %+v", evt)
	}

	// the timed-out read left other's decoder failed; use a new connection
	late := connectRawClient(t, socketPath)
	late.subscribe(t, "board-2")

	publisher.publish(t, events.AllBoards)
	if _, ok := late.nextEvent(t, 2*time.Second); !ok {
		t.Error("an AllBoards event should reach every subscriber")
	}
}

func TestBroadcast_SequenceIncreases(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	publisher := connectRawClient(t, socketPath)
	subscriber := connectRawClient(t, socketPath)
	subscriber.subscribe(t, "board-1")

	for i := 0; i < 3; i++ {
		publisher.publish(t, "board-1")
	}

	var last int64
	for i := 0; i < 3; i++ {
		evt, ok := subscriber.nextEvent(t, 2*time.Second)
		if !ok {
			t.Fatalf("missing event %d", i)
		}
		if evt.SequenceID <= last {
			t.Errorf("sequence went from %d to %d", last, evt.SequenceID)
		}
		last = evt.SequenceID
	}
}

func TestServer_TracksClientsAndMetrics(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	publisher := connectRawClient(t, socketPath)
	subscriber := connectRawClient(t, socketPath)
	subscriber.subscribe(t, "board-1")

	if got := server.Metrics().GetConnectedClients(); got != 2 {
		t.Errorf("ConnectedClients = %d, want 2", got)
	}

	publisher.publish(t, "board-1")
	if _, ok := subscriber.nextEvent(t, 2*time.Second); !ok {
		t.Fatal("subscriber did not receive event")
	}

	snap := server.Metrics().GetSnapshot()
	if snap.EventsReceived != 1 {
		t.Errorf("EventsReceived = %d, want 1", snap.EventsReceived)
	}
	if snap.RefreshesTotal != 1 {
		t.Errorf("RefreshesTotal = %d, want 1", snap.RefreshesTotal)
	}
	if snap.EventsSent < 2 {
		t.Errorf("EventsSent = %d, want at least the ack and the event", snap.EventsSent)
	}

	_ = publisher.conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for server.Metrics().GetConnectedClients() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := server.Metrics().GetConnectedClients(); got != 1 {
		t.Errorf("ConnectedClients after disconnect = %d, want 1", got)
	}
}

func TestServer_RemovesStaleClients(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)
	c.subscribe(t, "board-1")

	server.removeStaleClients(time.Now().Add(time.Hour))

	if got := server.getClientCount(); got != 0 {
		t.Errorf("client count = %d, want 0", got)
	}
	if _, ok := c.read(t, time.Second); ok {
		t.Error("stale client connection should be closed")
	}
}

func TestServer_PingAndPong(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)
	c.subscribe(t, "board-1")

	server.pingClients()

	msg, ok := c.read(t, 2*time.Second)
	if !ok || msg.Type != events.MessagePing {
		t.Fatalf("expected ping, got %+v (ok=%v)", msg, ok)
	}

	c.send(t, events.Message{Type: events.MessagePong})
	// round trip a subscribe so the pong has been processed
	c.subscribe(t, "board-1")

	server.removeStaleClients(time.Now().Add(time.Minute))
	if got := server.getClientCount(); got != 1 {
		t.Errorf("client that answered should stay connected, count = %d", got)
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectRawClient(t, socketPath)
	c.subscribe(t, events.AllBoards)

	if err := server.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := server.Shutdown(); err != nil {
		t.Fatalf("second Shutdown failed: %v", err)
	}
	if err := server.Broadcast(events.Event{Type: events.EventBoardChanged}); err == nil {
		t.Error("Broadcast after shutdown should fail")
	}
	if _, ok := c.read(t, time.Second); ok {
		t.Error("client should be disconnected after shutdown")
	}
}

func TestEndToEnd_WithEventsClient(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	writer, err := events.NewClient(socketPath, events.WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = writer.Close() }()

	reader, err := events.NewClient(socketPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = reader.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := reader.Connect(ctx); err != nil {
		t.Fatalf("reader connect: %v", err)
	}
	if err := reader.Subscribe("board-9"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	ch, err := reader.Listen(ctx)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	if err := writer.Connect(ctx); err != nil {
		t.Fatalf("writer connect: %v", err)
	}

	// the subscription races the first publish, so retry until delivered
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if err := events.BoardChanged(writer, "board-9"); err != nil {
			t.Fatalf("publish: %v", err)
		}
		select {
		case evt := <-ch:
			if evt.BoardID != "board-9" {
				t.Errorf("BoardID = %q, want board-9", evt.BoardID)
			}
			return
		case <-ticker.C:
		case <-ctx.Done():
			t.Fatal("event never reached the reader")
		}
	}
}
