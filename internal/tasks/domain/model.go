package domain

import (
	"errors"
	"time"

	"github.com/calendario-app/calendario-backend/internal/payload"
)

var ErrNotFound = errors.New("task not found")

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Category    *string    `json:"category,omitempty"`
	Color       *string    `json:"color,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Input struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	DueDate     payload.Time `json:"dueDate"`
	Completed   payload.Flag `json:"completed"`
	Priority    *string      `json:"priority"`
	Category    *string      `json:"category"`
	Color       *string      `json:"color"`
}

type Patch struct {
	Title       *string
	Description payload.Opt[string]
	DueDate     payload.Opt[time.Time]
	Completed   *bool
	Priority    *Priority
	Category    payload.Opt[string]
	Color       payload.Opt[string]
}

func (p Patch) Empty() bool {
	return p.Title == nil && !p.Description.Set && !p.DueDate.Set && p.Completed == nil &&
		p.Priority == nil && !p.Category.Set && !p.Color.Set
}

// Apply writes the patch onto t.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Value
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category.Set {
		t.Category = p.Category.Value
	}
	if p.Color.Set {
		t.Color = p.Color.Value
	}
}

// ListFilter narrows a listing. Day selects tasks due on that UTC date.
type ListFilter struct {
	Completed *bool
	Priority  Priority
	Category  string
	Day       *time.Time
}
