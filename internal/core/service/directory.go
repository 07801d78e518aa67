package service

import (
	"sync"

	"github.com/dialtone-dev/dialtone/internal/core/port"
	"github.com/rs/zerolog/log"
)

// Directory is the bidirectional mapping between a username and its live
// connection. At most one connection per username; registering a new one
// silently supersedes the old. Both indexes are updated atomically.
type Directory struct {
	mu     sync.RWMutex
	byUser map[string]port.Client
	byConn map[string]string // client ID -> username
}

func NewDirectory() *Directory {
	return &Directory{
		byUser: make(map[string]port.Client),
		byConn: make(map[string]string),
	}
}

// Bind associates the client with the username, replacing any prior binding
// for either side. The superseded connection is not closed or notified; it
// simply stops resolving.
func (d *Directory) Bind(username string, c port.Client) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.byUser[username]; ok && prev.ID() != c.ID() {
		delete(d.byConn, prev.ID())
		log.Debug().Str("username", username).Str("client_id", c.ID()).
			Msg("Superseding previous connection")
	}
	if old, ok := d.byConn[c.ID()]; ok && old != username {
		if cur, ok := d.byUser[old]; ok && cur.ID() == c.ID() {
			delete(d.byUser, old)
		}
	}

	d.byUser[username] = c
	d.byConn[c.ID()] = username
}

func (d *Directory) ClientFor(username string) (port.Client, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byUser[username]
	return c, ok
}

func (d *Directory) UsernameFor(clientID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byConn[clientID]
	return u, ok
}

// Unbind removes the client's binding on transport disconnect. A binding that
// has already been superseded by a newer connection is left alone.
func (d *Directory) Unbind(c port.Client) {
	d.mu.Lock()
	defer d.mu.Unlock()

	username, ok := d.byConn[c.ID()]
	if !ok {
		return
	}
	delete(d.byConn, c.ID())
	if cur, ok := d.byUser[username]; ok && cur.ID() == c.ID() {
		delete(d.byUser, username)
	}
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byUser)
}
