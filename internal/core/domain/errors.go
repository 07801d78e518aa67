package domain

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("user not logged in")
	ErrMissingFields      = errors.New("username and password required")
)
