package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dialtone-dev/dialtone/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	defer repo.Close()

	user := &domain.User{Username: "alice", PasswordHash: []byte("$2a$10$hash")}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	// unique username
	err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: []byte("x")})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	got, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, []byte("$2a$10$hash"), got.PasswordHash)

	_, err = repo.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
