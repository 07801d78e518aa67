package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dialtone-dev/dialtone/internal/core/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func writeEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

func readEvent(t *testing.T, conn *websocket.Conn) eventEnvelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env eventEnvelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestWebSocketCallFlow(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()

	for _, u := range []string{"alice", "bob"} {
		postJSON(t, h.NewRouter(), "/register", credentialsDTO{Username: u, Password: "pw"})
		postJSON(t, h.NewRouter(), "/login", credentialsDTO{Username: u, Password: "pw"})
	}

	connA := dialWS(t, srv)
	connB := dialWS(t, srv)

	writeEvent(t, connA, domain.EventUserConnected, domain.ConnectPayload{Username: "alice"})
	writeEvent(t, connB, domain.EventUserConnected, domain.ConnectPayload{Username: "bob"})

	// bindings happen on independent connection streams; give B's a moment
	// to land before dialing from A
	time.Sleep(200 * time.Millisecond)

	writeEvent(t, connA, domain.EventDialUser, domain.RingPayload{Caller: "alice", Callee: "bob"})

	env := readEvent(t, connB)
	assert.Equal(t, domain.EventIncomingCall, env.Event)

	var ring domain.RingPayload
	require.NoError(t, json.Unmarshal(env.Data, &ring))
	assert.Equal(t, domain.RingPayload{Caller: "alice", Callee: "bob"}, ring)

	writeEvent(t, connB, domain.EventCallAccepted, domain.RingPayload{Caller: "alice", Callee: "bob"})

	env = readEvent(t, connA)
	assert.Equal(t, domain.EventCallAccepted, env.Event)
}

func TestWebSocketOfferRelay(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()

	connA := dialWS(t, srv)
	connB := dialWS(t, srv)

	writeEvent(t, connA, domain.EventUserConnected, domain.ConnectPayload{Username: "alice"})
	writeEvent(t, connB, domain.EventUserConnected, domain.ConnectPayload{Username: "bob"})
	time.Sleep(200 * time.Millisecond)

	writeEvent(t, connA, domain.EventSendOffer, domain.OfferPayload{
		Caller: "alice",
		Callee: "bob",
		Offer:  json.RawMessage(`{"type":"offer","sdp":"v=0"}`),
	})

	env := readEvent(t, connB)
	assert.Equal(t, domain.EventReceiveOffer, env.Event)

	var offer domain.OfferPayload
	require.NoError(t, json.Unmarshal(env.Data, &offer))
	assert.Equal(t, "alice", offer.Caller)
	assert.Equal(t, "bob", offer.Callee)
	assert.JSONEq(t, `{"type":"offer","sdp":"v=0"}`, string(offer.Offer))
}

func TestWebSocketUnknownEventIgnored(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h.NewRouter())
	defer srv.Close()

	conn := dialWS(t, srv)
	writeEvent(t, conn, "no_such_event", map[string]string{"x": "y"})

	// the connection stays usable
	writeEvent(t, conn, domain.EventUserConnected, domain.ConnectPayload{Username: "alice"})
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)))
}
