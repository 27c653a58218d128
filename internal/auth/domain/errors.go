package domain

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// ErrIdentityUnavailable means the identity provider is not configured.
	ErrIdentityUnavailable = errors.New("identity provider not configured")
	// ErrTokenRejected means the identity provider refused the credential.
	ErrTokenRejected = errors.New("token rejected")
)
