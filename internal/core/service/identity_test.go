package service

import (
	"context"
	"testing"

	"github.com/dialtone-dev/dialtone/internal/adapter/driven/persistence/memory"
	"github.com/dialtone-dev/dialtone/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentity(t *testing.T) (*Identity, *Presence) {
	t.Helper()
	presence := NewPresence()
	return NewIdentity(memory.NewUserRepository(), presence), presence
}

func TestIdentityRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, presence := newIdentity(t)

	require.NoError(t, svc.Register(ctx, "alice", "s3cret"))

	require.NoError(t, svc.Login(ctx, "alice", "s3cret"))
	assert.True(t, presence.IsLoggedIn("alice"))
}

func TestIdentityDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newIdentity(t)

	require.NoError(t, svc.Register(ctx, "alice", "one"))
	err := svc.Register(ctx, "alice", "two")
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestIdentityMissingFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newIdentity(t)

	require.ErrorIs(t, svc.Register(ctx, "", "pw"), domain.ErrMissingFields)
	require.ErrorIs(t, svc.Register(ctx, "alice", ""), domain.ErrMissingFields)
	require.ErrorIs(t, svc.Login(ctx, "", "pw"), domain.ErrMissingFields)
}

func TestIdentityBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, presence := newIdentity(t)

	require.NoError(t, svc.Register(ctx, "alice", "s3cret"))

	// wrong password and unknown user look the same
	require.ErrorIs(t, svc.Login(ctx, "alice", "wrong"), domain.ErrInvalidCredentials)
	require.ErrorIs(t, svc.Login(ctx, "nobody", "s3cret"), domain.ErrInvalidCredentials)

	assert.False(t, presence.IsLoggedIn("alice"))
}

func TestIdentityLogout(t *testing.T) {
	ctx := context.Background()
	svc, presence := newIdentity(t)

	require.NoError(t, svc.Register(ctx, "alice", "s3cret"))
	require.NoError(t, svc.Login(ctx, "alice", "s3cret"))

	require.NoError(t, svc.Logout("alice"))
	assert.False(t, presence.IsLoggedIn("alice"))

	require.ErrorIs(t, svc.Logout("alice"), domain.ErrNotLoggedIn)
	require.ErrorIs(t, svc.Logout(""), domain.ErrNotLoggedIn)
}

func TestIdentityLoggedInList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newIdentity(t)

	for _, u := range []string{"alice", "bob"} {
		require.NoError(t, svc.Register(ctx, u, "pw"))
		require.NoError(t, svc.Login(ctx, u, "pw"))
	}

	assert.ElementsMatch(t, []string{"alice", "bob"}, svc.LoggedIn())
}
