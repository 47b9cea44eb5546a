package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account. PasswordHash is a bcrypt hash and never leaves
// the package boundary in responses.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
