package domain

// User is one registered account. Username is an opaque identifier; the relay
// never validates its format.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
}
