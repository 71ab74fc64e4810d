package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for accounts.
type UserStore interface {
	// GetByEmail returns the account including its password hash.
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// Create inserts a new account. The store assigns ID and CreatedAt.
	// ErrAlreadyExists is returned when the email is taken.
	Create(ctx context.Context, email, passwordHash string) (User, error)
}

// User represents a stored account with its password hash.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUser is the account projection that is safe to return to clients.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the email/password pair submitted on register and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by successful register and login operations.
type AuthResult struct {
	User  PublicUser
	Token string
}

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	// Burn runs a verification against an internal digest so that unknown
	// accounts cost the same as known ones.
	Burn(password string)
}
