package domain

import (
	"errors"
	"time"

	"github.com/calendario-app/calendario-backend/internal/payload"
)

var ErrNotFound = errors.New("event not found")

type WorkStatus string

const (
	WorkPending    WorkStatus = "pending"
	WorkInProgress WorkStatus = "in_progress"
	WorkPaid       WorkStatus = "paid"
)

// WorkStatuses lists the labels in their usual order. Any of them may be set
// directly; the order is not enforced.
var WorkStatuses = []WorkStatus{WorkPending, WorkInProgress, WorkPaid}

func (s WorkStatus) Valid() bool {
	switch s {
	case WorkPending, WorkInProgress, WorkPaid:
		return true
	}
	return false
}

// Event is a calendar entry. The work fields are either all absent or
// describe a billable job for a company.
type Event struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	AllDay      bool       `json:"allDay"`
	Category    string     `json:"category"`
	Color       string     `json:"color"`
	Location    *string    `json:"location,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`

	IsWork           bool        `json:"isWork"`
	CompanyID        *string     `json:"companyId,omitempty"`
	WorkStatus       *WorkStatus `json:"workStatus,omitempty"`
	Price            *float64    `json:"price,omitempty"`
	IncludesExpenses *bool       `json:"includesExpenses,omitempty"`
	Expenses         *float64    `json:"expenses,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Work returns the billing sub-record, or nil for a non-work event.
func (e *Event) Work() *Work {
	if !e.IsWork || e.CompanyID == nil {
		return nil
	}
	w := &Work{CompanyID: *e.CompanyID, Status: WorkPending, Price: e.Price, Expenses: e.Expenses}
	if e.WorkStatus != nil {
		w.Status = *e.WorkStatus
	}
	if e.IncludesExpenses != nil {
		w.IncludesExpenses = *e.IncludesExpenses
	}
	return w
}

// SetWork copies w onto the event; nil clears every work field.
func (e *Event) SetWork(w *Work) {
	if w == nil {
		e.IsWork = false
		e.CompanyID, e.WorkStatus, e.Price, e.IncludesExpenses, e.Expenses = nil, nil, nil, nil, nil
		return
	}
	company, status, includes := w.CompanyID, w.Status, w.IncludesExpenses
	e.IsWork = true
	e.CompanyID = &company
	e.WorkStatus = &status
	e.Price = w.Price
	e.IncludesExpenses = &includes
	e.Expenses = w.Expenses
}

// Work is a normalized billing sub-record.
type Work struct {
	CompanyID        string
	Status           WorkStatus
	Price            *float64
	IncludesExpenses bool
	Expenses         *float64
}

// Input is the client payload for create and update. Every field records
// whether it was present so updates can tell "absent" from "cleared".
type Input struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	StartDate   payload.Time `json:"startDate"`
	EndDate     payload.Time `json:"endDate"`
	AllDay      payload.Flag `json:"allDay"`
	Category    *string      `json:"category"`
	Color       *string      `json:"color"`
	Location    *string      `json:"location"`
	Reminder    payload.Time `json:"reminder"`

	IsWork           payload.Flag   `json:"isWork"`
	CompanyID        *string        `json:"companyId"`
	WorkStatus       *string        `json:"workStatus"`
	Price            payload.Number `json:"price"`
	IncludesExpenses payload.Flag   `json:"includesExpenses"`
	Expenses         payload.Number `json:"expenses"`
}

// HasWorkFields reports whether the payload touches the work sub-record.
func (in Input) HasWorkFields() bool {
	return in.IsWork.Set || in.CompanyID != nil || in.WorkStatus != nil ||
		in.Price.Set || in.IncludesExpenses.Set || in.Expenses.Set
}

// Patch is a normalized partial update. Work, when set, rewrites every
// work column at once.
type Patch struct {
	Title       *string
	Description payload.Opt[string]
	StartDate   *time.Time
	EndDate     *time.Time
	AllDay      *bool
	Category    *string
	Color       *string
	Location    payload.Opt[string]
	Reminder    payload.Opt[time.Time]
	Work        payload.Opt[Work]
}

func (p Patch) Empty() bool {
	return p.Title == nil && !p.Description.Set && p.StartDate == nil && p.EndDate == nil &&
		p.AllDay == nil && p.Category == nil && p.Color == nil && !p.Location.Set &&
		!p.Reminder.Set && !p.Work.Set
}

// ListFilter narrows a listing. The date range applies only when both
// bounds are given.
type ListFilter struct {
	Start     *time.Time
	End       *time.Time
	Category  string
	CompanyID string
	IsWork    *bool
}

// WorkTotals aggregates the work events of one company for one status.
type WorkTotals struct {
	Status   WorkStatus `json:"status"`
	Events   int        `json:"events"`
	Price    float64    `json:"price"`
	Expenses float64    `json:"expenses"`
}
