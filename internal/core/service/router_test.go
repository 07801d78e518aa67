package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterTargetedDelivery(t *testing.T) {
	d := NewDirectory()
	r := NewRouter(d)

	alice := newFakeClient("conn-a")
	bob := newFakeClient("conn-b")
	d.Bind("alice", alice)
	d.Bind("bob", bob)

	r.Route("bob", "incoming_call", map[string]string{"caller": "alice"})

	events := bob.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, "incoming_call", events[0].name)

	// only the resolved recipient sees the event
	assert.Empty(t, alice.recorded())
}

func TestRouterMissIsSilent(t *testing.T) {
	d := NewDirectory()
	r := NewRouter(d)

	alice := newFakeClient("conn-a")
	d.Bind("alice", alice)

	// must not panic, must not deliver, must leave the directory untouched
	r.Route("nobody", "receive_offer", nil)

	assert.Empty(t, alice.recorded())
	assert.Equal(t, 1, d.Len())
	_, ok := d.ClientFor("alice")
	assert.True(t, ok)
}

func TestRouterSendErrorTolerated(t *testing.T) {
	d := NewDirectory()
	r := NewRouter(d)

	broken := newFakeClient("conn-x")
	broken.sendErr = errors.New("write: broken pipe")
	d.Bind("alice", broken)

	r.Route("alice", "receive_answer", nil)

	// the entry stays; transport-level teardown owns removal
	_, ok := d.ClientFor("alice")
	assert.True(t, ok)
}
