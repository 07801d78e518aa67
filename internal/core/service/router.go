package service

import (
	"github.com/dialtone-dev/dialtone/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Router delivers a named event to exactly one recipient, resolved through the
// Directory. Delivery is fire-and-forget: a recipient with no live connection
// is a logged drop, never an error back to the sender.
type Router struct {
	dir *Directory
}

func NewRouter(dir *Directory) *Router {
	return &Router{dir: dir}
}

func (r *Router) Route(recipient, event string, data any) {
	c, ok := r.dir.ClientFor(recipient)
	if !ok {
		metrics.RoutingMisses.Inc()
		log.Warn().Str("recipient", recipient).Str("event", event).
			Msg("Recipient has no live connection, dropping event")
		return
	}

	if err := c.SendEvent(event, data); err != nil {
		log.Error().Err(err).Str("recipient", recipient).Str("event", event).
			Msg("Failed to deliver event")
		return
	}
	metrics.EventsRouted.WithLabelValues(event).Inc()
}
