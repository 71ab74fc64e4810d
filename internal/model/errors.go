package model

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	ErrEmptySecret    = errors.New("token signing secret is empty")
	ErrTokenMalformed = errors.New("token is malformed or tampered")
	ErrTokenExpired   = errors.New("token is expired")
	ErrInvalidTTL     = errors.New("token ttl must be positive")

	ErrEmptyPassword   = errors.New("password is empty")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
