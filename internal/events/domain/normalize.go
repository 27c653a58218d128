package domain

import (
	"strings"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/payload"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxLocationLength    = 200
)

const msgDateRange = "La fecha de fin debe ser posterior a la fecha de inicio"

// NormalizeWork shapes the work sub-record of a payload:
//
//  1. a falsy isWork yields no work record;
//  2. so does a missing or blank companyId, demoting the event to non-work;
//  3. otherwise the status falls back to pending, and price and expenses are
//     kept only when they parse as non-negative numbers. Expenses are dropped
//     whenever includesExpenses is false.
func NormalizeWork(in Input) *Work {
	if !in.IsWork.Value {
		return nil
	}
	company := payload.Trim(in.CompanyID)
	if company == "" {
		return nil
	}

	w := &Work{
		CompanyID:        company,
		Status:           WorkPending,
		IncludesExpenses: in.IncludesExpenses.Value,
	}
	if in.WorkStatus != nil {
		if s := WorkStatus(strings.TrimSpace(*in.WorkStatus)); s.Valid() {
			w.Status = s
		}
	}
	if v, ok := in.Price.NonNegative(); ok {
		w.Price = &v
	}
	if w.IncludesExpenses {
		if v, ok := in.Expenses.NonNegative(); ok {
			w.Expenses = &v
		}
	}
	return w
}

// WithStoredWork fills the work keys the payload left out from the stored
// event, so a partial update of one work field keeps the others.
func (in Input) WithStoredWork(e *Event) Input {
	if !in.IsWork.Set {
		in.IsWork = payload.FlagOf(e.IsWork)
	}
	if in.CompanyID == nil {
		in.CompanyID = e.CompanyID
	}
	if in.WorkStatus == nil && e.WorkStatus != nil {
		s := string(*e.WorkStatus)
		in.WorkStatus = &s
	}
	if !in.Price.Set && e.Price != nil {
		in.Price = payload.NumberOf(*e.Price)
	}
	if !in.IncludesExpenses.Set && e.IncludesExpenses != nil {
		in.IncludesExpenses = payload.FlagOf(*e.IncludesExpenses)
	}
	if !in.Expenses.Set && e.Expenses != nil {
		in.Expenses = payload.NumberOf(*e.Expenses)
	}
	return in
}

// NormalizeCreate validates a new event and returns it without id or owner.
func NormalizeCreate(in Input) (*Event, error) {
	e := &Event{AllDay: in.AllDay.Value}

	var err error
	if e.Title, err = title(in.Title); err != nil {
		return nil, err
	}
	if e.Description, err = description(in.Description); err != nil {
		return nil, err
	}
	if !in.StartDate.Valid {
		return nil, apperr.Validation("La fecha de inicio es requerida")
	}
	if !in.EndDate.Valid {
		return nil, apperr.Validation("La fecha de fin es requerida")
	}
	if in.EndDate.Time.Before(in.StartDate.Time) {
		return nil, apperr.Validation(msgDateRange)
	}
	e.StartDate, e.EndDate = in.StartDate.Time, in.EndDate.Time
	if e.Category, err = category(in.Category); err != nil {
		return nil, err
	}
	if e.Color, err = color(in.Color); err != nil {
		return nil, err
	}
	if e.Location, err = location(in.Location); err != nil {
		return nil, err
	}
	e.Reminder = in.Reminder.Ptr()

	e.SetWork(NormalizeWork(in))
	return e, nil
}

// NormalizePatch validates the fields present in an update. The date range
// is checked only when both dates are in the payload. Work keys, when any
// is present, produce a full rewrite of the work columns.
func NormalizePatch(in Input) (Patch, error) {
	var p Patch

	if in.Title != nil {
		t, err := title(in.Title)
		if err != nil {
			return Patch{}, err
		}
		p.Title = &t
	}
	if in.Description != nil {
		d, err := description(in.Description)
		if err != nil {
			return Patch{}, err
		}
		p.Description = payload.OptOf(d)
	}
	if in.StartDate.Set {
		if !in.StartDate.Valid {
			return Patch{}, apperr.Validation("La fecha de inicio es requerida")
		}
		p.StartDate = in.StartDate.Ptr()
	}
	if in.EndDate.Set {
		if !in.EndDate.Valid {
			return Patch{}, apperr.Validation("La fecha de fin es requerida")
		}
		p.EndDate = in.EndDate.Ptr()
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return Patch{}, apperr.Validation(msgDateRange)
	}
	if in.AllDay.Set {
		v := in.AllDay.Value
		p.AllDay = &v
	}
	if in.Category != nil {
		c, err := category(in.Category)
		if err != nil {
			return Patch{}, err
		}
		p.Category = &c
	}
	if in.Color != nil {
		c, err := color(in.Color)
		if err != nil {
			return Patch{}, err
		}
		p.Color = &c
	}
	if in.Location != nil {
		l, err := location(in.Location)
		if err != nil {
			return Patch{}, err
		}
		p.Location = payload.OptOf(l)
	}
	if in.Reminder.Set {
		p.Reminder = payload.OptOf(in.Reminder.Ptr())
	}
	if in.HasWorkFields() {
		p.Work = payload.OptOf(NormalizeWork(in))
	}
	return p, nil
}

// Apply writes the patch onto e.
func (p Patch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description.Set {
		e.Description = p.Description.Value
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Location.Set {
		e.Location = p.Location.Value
	}
	if p.Reminder.Set {
		e.Reminder = p.Reminder.Value
	}
	if p.Work.Set {
		e.SetWork(p.Work.Value)
	}
}

func title(p *string) (string, error) {
	t := payload.Trim(p)
	if t == "" {
		return "", apperr.Validation("El título es requerido")
	}
	if payload.TooLong(t, MaxTitleLength) {
		return "", apperr.Validationf("El título no puede exceder %d caracteres", MaxTitleLength)
	}
	return t, nil
}

func description(p *string) (*string, error) {
	d := payload.Optional(p)
	if d != nil && payload.TooLong(*d, MaxDescriptionLength) {
		return nil, apperr.Validationf("La descripción no puede exceder %d caracteres", MaxDescriptionLength)
	}
	return d, nil
}

func category(p *string) (string, error) {
	c := payload.Trim(p)
	if c == "" {
		return "", apperr.Validation("La categoría es requerida")
	}
	return c, nil
}

func color(p *string) (string, error) {
	c := payload.Trim(p)
	if c == "" {
		return "", apperr.Validation("El color es requerido")
	}
	if !payload.IsHexColor(c) {
		return "", apperr.Validation("El color debe ser un código hexadecimal válido")
	}
	return c, nil
}

func location(p *string) (*string, error) {
	l := payload.Optional(p)
	if l != nil && payload.TooLong(*l, MaxLocationLength) {
		return nil, apperr.Validationf("La ubicación no puede exceder %d caracteres", MaxLocationLength)
	}
	return l, nil
}
