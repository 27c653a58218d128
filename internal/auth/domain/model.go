package domain

import "time"

// Provider is how the user signed up.
type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderGoogle Provider = "google"
)

func (p Provider) Valid() bool {
	return p == ProviderEmail || p == ProviderGoogle
}

// User represents a user in the application
// Firebase UID is the primary identifier and the owner id of every resource
type User struct {
	FirebaseUID string    `json:"firebaseUid"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Provider    Provider  `json:"provider"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Identity is what the identity provider vouches for after verifying a token.
type Identity struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterRequest represents data needed to register an email/password user
type RegisterRequest struct {
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Provider    string
}

// FederatedLoginRequest carries the optional profile sent after a Google sign-in
type FederatedLoginRequest struct {
	Email     string
	FirstName string
	LastName  string
	Provider  string
}
