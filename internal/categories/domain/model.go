package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("category not found")

// Category groups events and tasks. Events and tasks copy the name, not the
// id, so a rename does not reach records that already use the old name.
type Category struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the client payload for create and update.
type Input struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// Changes is a normalized update; nil fields stay untouched.
type Changes struct {
	Name  *string
	Color *string
}

func (c Changes) Empty() bool { return c.Name == nil && c.Color == nil }
