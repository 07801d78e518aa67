package domain

import "encoding/json"

// Inbound signaling event names, as sent by clients.
const (
	EventSendOffer        = "send_offer"
	EventSendAnswer       = "send_answer"
	EventSendICECandidate = "send_ice_candidate"
	EventDialUser         = "dial_user"
	EventCallAccepted     = "call_accepted"
	EventCallDeclined     = "call_declined"
	EventUserConnected    = "user_connected"
)

// Outbound signaling event names, as delivered to clients.
const (
	EventReceiveOffer        = "receive_offer"
	EventReceiveAnswer       = "receive_answer"
	EventReceiveICECandidate = "receive_ice_candidate"
	EventIncomingCall        = "incoming_call"
	EventCalleeUnavailable   = "callee_unavailable"
)

// OfferPayload carries an opaque SDP offer from caller to callee.
type OfferPayload struct {
	Caller string          `json:"caller"`
	Callee string          `json:"callee"`
	Offer  json.RawMessage `json:"offer"`
}

// AnswerPayload carries an opaque SDP answer back to the caller.
type AnswerPayload struct {
	Caller string          `json:"caller"`
	Callee string          `json:"callee"`
	Answer json.RawMessage `json:"answer"`
}

// CandidatePayload carries an opaque ICE candidate between peers.
type CandidatePayload struct {
	Sender    string          `json:"sender"`
	Target    string          `json:"target"`
	Candidate json.RawMessage `json:"candidate"`
}

// RingPayload is shared by dial_user, incoming_call, call_accepted and
// callee_unavailable.
type RingPayload struct {
	Caller string `json:"caller"`
	Callee string `json:"callee"`
}

// DeclinePayload keeps the legacy "receiver" field name on the wire.
type DeclinePayload struct {
	Caller   string `json:"caller"`
	Receiver string `json:"receiver"`
}

// ConnectPayload announces which username owns the sending connection.
type ConnectPayload struct {
	Username string `json:"username"`
}
