package service

import (
	"github.com/dialtone-dev/dialtone/internal/core/domain"
	"github.com/dialtone-dev/dialtone/internal/core/port"
	"github.com/rs/zerolog/log"
)

// SignalService implements the call-negotiation protocol on top of the
// presence registry, connection directory and event router. All handlers are
// fire-and-forget: failures are diagnostics, never errors back to the sender.
type SignalService struct {
	presence *Presence
	dir      *Directory
	router   *Router
	store    *SessionStore
}

func NewSignalService(presence *Presence, dir *Directory, router *Router, store *SessionStore) *SignalService {
	return &SignalService{
		presence: presence,
		dir:      dir,
		router:   router,
		store:    store,
	}
}

// Connect handles user_connected: it binds the sending connection in the
// directory. It deliberately does not touch the presence registry; being
// connected and being logged in are separate facts.
func (s *SignalService) Connect(username string, c port.Client) {
	s.dir.Bind(username, c)
	log.Info().Str("username", username).Str("client_id", c.ID()).
		Msg("User announced presence on connection")
}

// Disconnect invalidates the connection's directory entry, if it still owns one.
func (s *SignalService) Disconnect(c port.Client) {
	s.dir.Unbind(c)
}

func (s *SignalService) SendOffer(p domain.OfferPayload) {
	s.store.PutOffer(p.Caller, p.Callee, p.Offer)
	s.router.Route(p.Callee, domain.EventReceiveOffer, p)
}

func (s *SignalService) SendAnswer(p domain.AnswerPayload) {
	if !s.store.AttachAnswer(p.Caller, p.Callee, p.Answer) {
		log.Debug().Str("caller", p.Caller).Str("callee", p.Callee).
			Msg("Answer without stored offer, forwarding without state")
	}
	s.router.Route(p.Caller, domain.EventReceiveAnswer, p)
}

func (s *SignalService) SendICECandidate(p domain.CandidatePayload) {
	if !s.store.AppendCandidate(p.Sender, p.Target, p.Candidate) {
		log.Debug().Str("sender", p.Sender).Str("target", p.Target).
			Msg("Candidate without stored offer, forwarding without state")
	}
	s.router.Route(p.Target, domain.EventReceiveICECandidate, p)
}

// DialUser rings the callee if they are logged in. An absent callee yields a
// callee_unavailable event back to the caller instead of a silent drop.
func (s *SignalService) DialUser(p domain.RingPayload) {
	if !s.presence.IsLoggedIn(p.Callee) {
		log.Warn().Str("caller", p.Caller).Str("callee", p.Callee).
			Msg("Dial target is not logged in")
		s.router.Route(p.Caller, domain.EventCalleeUnavailable, p)
		return
	}

	sess := s.store.StartCall(p.Caller, p.Callee)
	log.Info().Str("call_id", sess.ID.String()).Str("caller", p.Caller).
		Str("callee", p.Callee).Msg("Ringing")
	s.router.Route(p.Callee, domain.EventIncomingCall, p)
}

// CallAccepted completes the handshake and notifies the caller. An accept for
// a call that was never dialed, or already resolved, is rejected.
func (s *SignalService) CallAccepted(p domain.RingPayload) {
	sess, ok := s.store.ResolveCall(p.Caller, p.Callee, domain.CallAccepted)
	if !ok {
		log.Warn().Str("caller", p.Caller).Str("callee", p.Callee).
			Msg("Accept for a call that is not ringing, dropping")
		return
	}
	log.Info().Str("call_id", sess.ID.String()).Msg("Call accepted")
	s.router.Route(p.Caller, domain.EventCallAccepted, p)
}

// CallDeclined mirrors CallAccepted with the legacy receiver field name.
func (s *SignalService) CallDeclined(p domain.DeclinePayload) {
	sess, ok := s.store.ResolveCall(p.Caller, p.Receiver, domain.CallDeclined)
	if !ok {
		log.Warn().Str("caller", p.Caller).Str("receiver", p.Receiver).
			Msg("Decline for a call that is not ringing, dropping")
		return
	}
	log.Info().Str("call_id", sess.ID.String()).Msg("Call declined")
	s.router.Route(p.Caller, domain.EventCallDeclined, p)
}
