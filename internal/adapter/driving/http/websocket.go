package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/dialtone-dev/dialtone/internal/core/domain"
	"github.com/dialtone-dev/dialtone/internal/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// eventEnvelope frames every message on the signaling channel, both directions.
type eventEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type WSClient struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex // gorilla allows only one concurrent writer
}

func (c *WSClient) ID() string {
	return c.id
}

func (c *WSClient) SendEvent(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(map[string]any{
		"event": event,
		"data":  data,
	})
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return h.cfg.AllowedOrigin == "*" || r.Header.Get("Origin") == h.cfg.AllowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	clientID := uuid.New().String()

	client := &WSClient{
		id:   clientID,
		conn: conn,
	}

	l := log.With().Str("client_id", clientID).Logger()
	l.Info().Msg("New client connected")
	metrics.LiveConnections.Inc()

	defer func() {
		l.Info().Msg("Client disconnected")
		h.Signals.Disconnect(client)
		metrics.LiveConnections.Dec()
		conn.Close()
	}()

	limiter := rate.NewLimiter(rate.Limit(h.cfg.EventRPS), h.cfg.EventBurst)

	// listening for browser
	for {
		var env eventEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		if !limiter.Allow() {
			l.Warn().Str("event", env.Event).Msg("Rate limit exceeded, dropping event")
			continue
		}

		h.dispatch(&l, client, env)
	}
}

func (h *Handler) dispatch(l *zerolog.Logger, client *WSClient, env eventEnvelope) {
	switch env.Event {
	case domain.EventUserConnected:
		var p domain.ConnectPayload
		if decodeData(l, env, &p) {
			h.Signals.Connect(p.Username, client)
		}
	case domain.EventSendOffer:
		var p domain.OfferPayload
		if decodeData(l, env, &p) {
			h.Signals.SendOffer(p)
		}
	case domain.EventSendAnswer:
		var p domain.AnswerPayload
		if decodeData(l, env, &p) {
			h.Signals.SendAnswer(p)
		}
	case domain.EventSendICECandidate:
		var p domain.CandidatePayload
		if decodeData(l, env, &p) {
			h.Signals.SendICECandidate(p)
		}
	case domain.EventDialUser:
		var p domain.RingPayload
		if decodeData(l, env, &p) {
			h.Signals.DialUser(p)
		}
	case domain.EventCallAccepted:
		var p domain.RingPayload
		if decodeData(l, env, &p) {
			h.Signals.CallAccepted(p)
		}
	case domain.EventCallDeclined:
		var p domain.DeclinePayload
		if decodeData(l, env, &p) {
			h.Signals.CallDeclined(p)
		}
	default:
		l.Warn().Str("event", env.Event).Msg("Unknown event")
	}
}

func decodeData(l *zerolog.Logger, env eventEnvelope, v any) bool {
	if err := json.Unmarshal(env.Data, v); err != nil {
		l.Error().Err(err).Str("event", env.Event).Msg("Invalid event payload")
		return false
	}
	return true
}
