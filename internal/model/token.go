package model

import (
	"github.com/google/uuid"
)

// TokenManager issues and verifies signed bearer tokens.
type TokenManager interface {
	Issue(identity Identity) (string, error)
	// Verify returns ErrTokenMalformed or ErrTokenExpired on failure.
	Verify(token string) (Claims, error)
}

// Identity is the authenticated account a request acts on behalf of.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// Claims are the verified contents of a token.
type Claims struct {
	Identity
	ExpiresAt int64
}
