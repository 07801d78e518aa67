// Package metrics exposes the relay's prometheus instruments. Everything is
// registered on the default registerer and served via /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsRouted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dialtone_events_routed_total",
		Help: "Signaling events delivered to a resolved recipient, by event name.",
	}, []string{"event"})

	RoutingMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dialtone_routing_misses_total",
		Help: "Signaling events dropped because the recipient had no live connection.",
	})

	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dialtone_live_connections",
		Help: "Currently open signaling connections.",
	})

	SessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dialtone_sessions_expired_total",
		Help: "Negotiation records and ringing calls removed by TTL sweep.",
	})
)
