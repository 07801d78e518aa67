package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/dialtone-dev/dialtone/internal/core/domain"
	"github.com/dialtone-dev/dialtone/internal/metrics"
	"github.com/rs/zerolog/log"
)

const sweepInterval = 10 * time.Second

// SessionStore holds per-pair negotiation records and outstanding ring
// handshakes. Entries expire after their TTL; accepted and declined calls are
// removed immediately. All state is in-memory and lost on restart.
type SessionStore struct {
	mu           sync.Mutex
	negotiations map[string]*domain.Negotiation
	calls        map[string]*domain.CallSession
	sessionTTL   time.Duration
	ringTTL      time.Duration
	quit         chan struct{}
}

func NewSessionStore(sessionTTL, ringTTL time.Duration) *SessionStore {
	return &SessionStore{
		negotiations: make(map[string]*domain.Negotiation),
		calls:        make(map[string]*domain.CallSession),
		sessionTTL:   sessionTTL,
		ringTTL:      ringTTL,
		quit:         make(chan struct{}),
	}
}

// PutOffer starts a fresh negotiation record for the pair. Any prior record,
// including its answer and candidates, is discarded.
func (s *SessionStore) PutOffer(caller, callee string, offer json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.negotiations[domain.PairKey(caller, callee)] = &domain.Negotiation{
		Caller:    caller,
		Callee:    callee,
		Offer:     offer,
		UpdatedAt: time.Now(),
	}
}

// AttachAnswer stores the answer on the pair's record. Reports false when no
// offer was stored for the pair; the event is still forwarded by the caller.
func (s *SessionStore) AttachAnswer(caller, callee string, answer json.RawMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	neg, ok := s.negotiations[domain.PairKey(caller, callee)]
	if !ok {
		return false
	}
	neg.Answer = answer
	neg.UpdatedAt = time.Now()
	return true
}

// AppendCandidate appends to the pair's candidate list in arrival order.
// Duplicates are allowed. Reports false when no record exists for the pair.
func (s *SessionStore) AppendCandidate(sender, target string, candidate json.RawMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	neg, ok := s.negotiations[domain.PairKey(sender, target)]
	if !ok {
		return false
	}
	neg.Candidates = append(neg.Candidates, candidate)
	neg.UpdatedAt = time.Now()
	return true
}

// Negotiation returns a copy of the pair's record.
func (s *SessionStore) Negotiation(a, b string) (domain.Negotiation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	neg, ok := s.negotiations[domain.PairKey(a, b)]
	if !ok {
		return domain.Negotiation{}, false
	}
	return *neg, true
}

// StartCall opens a ringing session for the pair. A re-dial while the previous
// ring is still outstanding replaces it with a fresh session.
func (s *SessionStore) StartCall(caller, callee string) domain.CallSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &domain.CallSession{
		ID:        domain.NewCallID(),
		Caller:    caller,
		Callee:    callee,
		State:     domain.CallRinging,
		StartedAt: time.Now(),
	}
	s.calls[domain.PairKey(caller, callee)] = sess
	return *sess
}

// ResolveCall finishes the ring handshake for the pair with the given outcome
// and removes the session. Reports false when no ring is outstanding, so
// out-of-order accepts and declines can be rejected.
func (s *SessionStore) ResolveCall(caller, callee string, state domain.CallState) (domain.CallSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.PairKey(caller, callee)
	sess, ok := s.calls[key]
	if !ok || sess.State != domain.CallRinging {
		return domain.CallSession{}, false
	}
	sess.State = state
	delete(s.calls, key)
	return *sess, true
}

// Run sweeps expired entries until Stop is called.
func (s *SessionStore) Run() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

func (s *SessionStore) Stop() {
	close(s.quit)
}

func (s *SessionStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for key, neg := range s.negotiations {
		if now.Sub(neg.UpdatedAt) > s.sessionTTL {
			delete(s.negotiations, key)
			expired++
		}
	}
	for key, sess := range s.calls {
		if now.Sub(sess.StartedAt) > s.ringTTL {
			delete(s.calls, key)
			expired++
			log.Debug().Str("call_id", sess.ID.String()).Str("caller", sess.Caller).
				Str("callee", sess.Callee).Msg("Ringing call expired")
		}
	}
	if expired > 0 {
		metrics.SessionsExpired.Add(float64(expired))
		log.Debug().Int("count", expired).Msg("Swept expired sessions")
	}
}
