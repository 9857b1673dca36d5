package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "kanboard_daemon"

// Metrics tracks daemon statistics using atomic operations for thread-safety.
// Every counter is also exported through a private prometheus registry.
type Metrics struct {
	EventsSent       atomic.Int64
	EventsReceived   atomic.Int64
	EventsDropped    atomic.Int64
	RefreshesTotal   atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with its own registry
func NewMetrics() *Metrics {
	m := &Metrics{
		StartTime: time.Now(),
		registry:  prometheus.NewRegistry(),
	}

	factory := promauto.With(m.registry)
	counter := func(name, help string, v *atomic.Int64) {
		factory.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(v.Load()) })
	}

	counter("events_sent_total", "Messages queued for delivery to clients.", &m.EventsSent)
	counter("events_received_total", "Board change events received from clients.", &m.EventsReceived)
	counter("events_dropped_total", "Messages dropped because a queue was full.", &m.EventsDropped)
	counter("broadcasts_total", "Events relayed by the broadcast loop.", &m.RefreshesTotal)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "connected_clients",
		Help:      "Clients currently connected to the socket.",
	}, func() float64 { return float64(m.ConnectedClients.Load()) })

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "uptime_seconds",
		Help:      "Seconds since the daemon started.",
	}, func() float64 { return time.Since(m.StartTime).Seconds() })

	m.registry.MustRegister(collectors.NewGoCollector())

	return m
}

func (m *Metrics) IncEventsSent()     { m.EventsSent.Add(1) }
func (m *Metrics) IncEventsReceived() { m.EventsReceived.Add(1) }
func (m *Metrics) IncEventsDropped()  { m.EventsDropped.Add(1) }
func (m *Metrics) IncRefreshesTotal() { m.RefreshesTotal.Add(1) }

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

func (m *Metrics) GetEventsSent() int64       { return m.EventsSent.Load() }
func (m *Metrics) GetEventsReceived() int64   { return m.EventsReceived.Load() }
func (m *Metrics) GetEventsDropped() int64    { return m.EventsDropped.Load() }
func (m *Metrics) GetRefreshesTotal() int64   { return m.RefreshesTotal.Load() }
func (m *Metrics) GetConnectedClients() int32 { return m.ConnectedClients.Load() }

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsSent       int64     `json:"events_sent"`
	EventsReceived   int64     `json:"events_received"`
	EventsDropped    int64     `json:"events_dropped"`
	RefreshesTotal   int64     `json:"refreshes_total"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsSent:       m.GetEventsSent(),
		EventsReceived:   m.GetEventsReceived(),
		EventsDropped:    m.GetEventsDropped(),
		RefreshesTotal:   m.GetRefreshesTotal(),
		ConnectedClients: m.GetConnectedClients(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).Truncate(time.Second).String(),
	}
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ServeMetrics serves Handler at /metrics on addr until ctx is cancelled.
// An empty addr disables the endpoint.
func (m *Metrics) ServeMetrics(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown", "error", err)
		}
	}()

	slog.Info("serving daemon metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
