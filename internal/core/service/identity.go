package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dialtone-dev/dialtone/internal/core/domain"
	"github.com/dialtone-dev/dialtone/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

// Identity handles account registration and the login/logout transitions that
// drive the presence registry. Credentials are bcrypt-hashed; the repository
// only ever sees the hash.
type Identity struct {
	repo     port.UserRepository
	presence *Presence
}

func NewIdentity(repo port.UserRepository, presence *Presence) *Identity {
	return &Identity{
		repo:     repo,
		presence: presence,
	}
}

func (s *Identity) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
	})
}

// Login verifies credentials and, on success, marks the username present.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Identity) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrMissingFields
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}

	s.presence.Login(username)
	return nil
}

func (s *Identity) Logout(username string) error {
	if username == "" {
		return domain.ErrNotLoggedIn
	}
	return s.presence.Logout(username)
}

func (s *Identity) LoggedIn() []string {
	return s.presence.List()
}
