package service

import (
	"sync"

	"github.com/dialtone-dev/dialtone/internal/core/domain"
)

// Presence tracks which usernames are currently logged in. It is a separate
// fact from having a live connection: a user can be logged in with no
// connection, or connected under a username that never logged in.
type Presence struct {
	mu    sync.Mutex
	users map[string]struct{}
}

func NewPresence() *Presence {
	return &Presence{
		users: make(map[string]struct{}),
	}
}

// Login marks the username as present. Idempotent.
func (p *Presence) Login(username string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[username] = struct{}{}
}

// Logout clears the username's presence. Logging out a username that is not
// present is reported to the caller, not swallowed.
func (p *Presence) Logout(username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[username]; !ok {
		return domain.ErrNotLoggedIn
	}
	delete(p.users, username)
	return nil
}

func (p *Presence) IsLoggedIn(username string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.users[username]
	return ok
}

// List returns a snapshot copy, safe to use while logins and logouts continue.
func (p *Presence) List() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.users))
	for u := range p.users {
		out = append(out, u)
	}
	return out
}
