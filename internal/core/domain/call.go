package domain

import (
	"encoding/json"
	"time"
)

type CallState string

const (
	CallRinging  CallState = "ringing"
	CallAccepted CallState = "accepted"
	CallDeclined CallState = "declined"
)

// CallSession tracks one outstanding ring handshake between two peers.
type CallSession struct {
	ID        CallID
	Caller    string
	Callee    string
	State     CallState
	StartedAt time.Time
}

// Negotiation holds the offer/answer/candidate artifacts for one peer pair.
// Payloads are opaque blobs; the relay never inspects them.
type Negotiation struct {
	Caller     string
	Callee     string
	Offer      json.RawMessage
	Answer     json.RawMessage
	Candidates []json.RawMessage
	UpdatedAt  time.Time
}

// PairKey returns the same deterministic key for a pair of usernames
// regardless of which side is given first.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
