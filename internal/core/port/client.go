package port

// Client is one live signaling connection. The core treats it as an opaque
// addressable channel that can receive named events with a payload.
type Client interface {
	ID() string
	SendEvent(event string, data any) error
	Close() error
}
