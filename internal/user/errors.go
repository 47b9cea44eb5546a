package user

import "errors"

var (
	// ErrNotFound is returned when no user matches the given id or email.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
)
