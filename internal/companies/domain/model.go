package domain

import (
	"errors"
	"time"

	evdomain "github.com/calendario-app/calendario-backend/internal/events/domain"
)

var ErrNotFound = errors.New("company not found")

// Fields are the client-editable attributes. Optional fields are nil when
// absent; they are never stored as empty strings.
type Fields struct {
	Name    string  `json:"name"`
	TaxID   *string `json:"nit,omitempty"`
	Country string  `json:"country"`
	Address *string `json:"address,omitempty"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`
	Logo    *string `json:"logo,omitempty"`
}

// Company is a client billed through work events.
type Company struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	Fields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Input struct {
	Name    *string `json:"name"`
	TaxID   *string `json:"nit"`
	Country *string `json:"country"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
	Logo    *string `json:"logo"`
}

// Summary totals the company's work events. ByStatus always lists the
// three statuses in order.
type Summary struct {
	Company  *Company              `json:"company"`
	ByStatus []evdomain.WorkTotals `json:"byStatus"`
	Events   int                   `json:"events"`
	Price    float64               `json:"price"`
	Expenses float64               `json:"expenses"`
	Total    float64               `json:"total"`
}

// Summarize folds per-status rows into a Summary.
func Summarize(c *Company, rows []evdomain.WorkTotals) *Summary {
	byStatus := make(map[evdomain.WorkStatus]evdomain.WorkTotals, len(rows))
	for _, r := range rows {
		byStatus[r.Status] = r
	}

	s := &Summary{Company: c, ByStatus: make([]evdomain.WorkTotals, 0, len(evdomain.WorkStatuses))}
	for _, st := range evdomain.WorkStatuses {
		t := byStatus[st]
		t.Status = st
		s.ByStatus = append(s.ByStatus, t)
		s.Events += t.Events
		s.Price += t.Price
		s.Expenses += t.Expenses
	}
	s.Total = s.Price + s.Expenses
	return s
}
