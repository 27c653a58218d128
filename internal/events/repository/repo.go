package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/events/domain"
	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
)

const dateRangeConstraint = "events_date_range"

type Repo struct {
	db postgres.DBTX
}

func NewRepo(db postgres.DBTX) *Repo {
	return &Repo{db: db}
}

const columns = `id::text, owner_id, title, description, start_date, end_date, all_day,
  category, color, location, reminder, is_work, company_id, work_status, price,
  includes_expenses, expenses, created_at, updated_at`

func scan(row pgx.Row) (*domain.Event, error) {
	var (
		e      domain.Event
		status *string
	)
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.AllDay,
		&e.Category, &e.Color, &e.Location, &e.Reminder, &e.IsWork, &e.CompanyID, &status, &e.Price,
		&e.IncludesExpenses, &e.Expenses, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if status != nil {
		s := domain.WorkStatus(*status)
		e.WorkStatus = &s
	}
	return &e, nil
}

// List returns the owner's events ordered by start date.
func (r *Repo) List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Event, error) {
	where := []string{"owner_id = $1"}
	args := []any{ownerID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Start != nil && f.End != nil {
		add("start_date >= $%d", *f.Start)
		add("start_date <= $%d", *f.End)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.CompanyID != "" {
		add("company_id = $%d", f.CompanyID)
	}
	if f.IsWork != nil {
		add("is_work = $%d", *f.IsWork)
	}

	q := `select ` + columns + ` from events where ` + strings.Join(where, " and ") + ` order by start_date asc, created_at asc`
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Event, 0, 32)
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (*domain.Event, error) {
	q := `select ` + columns + ` from events where id = $1::uuid and owner_id = $2`
	e, err := scan(r.db.QueryRow(ctx, q, id, ownerID))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

func (r *Repo) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	const q = `
insert into events (
  id, owner_id, title, description, start_date, end_date, all_day, category, color,
  location, reminder, is_work, company_id, work_status, price, includes_expenses, expenses
)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
returning created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q,
		e.ID, e.OwnerID, e.Title, e.Description, e.StartDate, e.EndDate, e.AllDay, e.Category, e.Color,
		e.Location, e.Reminder, e.IsWork, e.CompanyID, statusArg(e.WorkStatus), e.Price, e.IncludesExpenses, e.Expenses,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return translate(err)
}

// Update applies p to the owner's event. A work change writes all six work
// columns so no partial work state survives.
func (r *Repo) Update(ctx context.Context, ownerID, id string, p domain.Patch) (*domain.Event, error) {
	var set postgres.Assignments
	if p.Title != nil {
		set.Set("title", *p.Title)
	}
	if p.Description.Set {
		set.Set("description", p.Description.Value)
	}
	if p.StartDate != nil {
		set.Set("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		set.Set("end_date", *p.EndDate)
	}
	if p.AllDay != nil {
		set.Set("all_day", *p.AllDay)
	}
	if p.Category != nil {
		set.Set("category", *p.Category)
	}
	if p.Color != nil {
		set.Set("color", *p.Color)
	}
	if p.Location.Set {
		set.Set("location", p.Location.Value)
	}
	if p.Reminder.Set {
		set.Set("reminder", p.Reminder.Value)
	}
	if p.Work.Set {
		var e domain.Event
		e.SetWork(p.Work.Value)
		set.Set("is_work", e.IsWork)
		set.Set("company_id", e.CompanyID)
		set.Set("work_status", statusArg(e.WorkStatus))
		set.Set("price", e.Price)
		set.Set("includes_expenses", e.IncludesExpenses)
		set.Set("expenses", e.Expenses)
	}
	if set.Len() == 0 {
		return r.Get(ctx, ownerID, id)
	}

	clause, args := set.Clause()
	q := `update events set ` + clause + `, updated_at = now()
where id = ` + set.Placeholder(1) + `::uuid and owner_id = ` + set.Placeholder(2) + `
returning ` + columns
	args = append(args, id, ownerID)

	e, err := scan(r.db.QueryRow(ctx, q, args...))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// SetWorkStatus changes the label of a work event only.
func (r *Repo) SetWorkStatus(ctx context.Context, ownerID, id string, status domain.WorkStatus) (*domain.Event, error) {
	q := `update events set work_status = $3, updated_at = now()
where id = $1::uuid and owner_id = $2 and is_work
returning ` + columns
	e, err := scan(r.db.QueryRow(ctx, q, id, ownerID, string(status)))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return e, err
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from events where id = $1::uuid and owner_id = $2;`
	ct, err := r.db.Exec(ctx, q, id, ownerID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) CountByCategory(ctx context.Context, ownerID, category string) (int, error) {
	const q = `select count(*) from events where owner_id = $1 and category = $2;`
	var n int
	err := r.db.QueryRow(ctx, q, ownerID, category).Scan(&n)
	return n, err
}

func (r *Repo) CountByCompany(ctx context.Context, ownerID, companyID string) (int, error) {
	const q = `select count(*) from events where owner_id = $1 and company_id = $2;`
	var n int
	err := r.db.QueryRow(ctx, q, ownerID, companyID).Scan(&n)
	return n, err
}

// WorkSummary totals the owner's work events for a company by status.
// Expenses count only where the event includes them.
func (r *Repo) WorkSummary(ctx context.Context, ownerID, companyID string) ([]domain.WorkTotals, error) {
	const q = `
select coalesce(work_status, 'pending') as status,
       count(*),
       coalesce(sum(price), 0),
       coalesce(sum(case when includes_expenses then expenses end), 0)
from events
where owner_id = $1 and company_id = $2 and is_work
group by 1
order by 1;
`
	rows, err := r.db.Query(ctx, q, ownerID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WorkTotals
	for rows.Next() {
		var (
			t      domain.WorkTotals
			status string
		)
		if err := rows.Scan(&status, &t.Events, &t.Price, &t.Expenses); err != nil {
			return nil, err
		}
		t.Status = domain.WorkStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func statusArg(s *domain.WorkStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// translate maps the date-range CHECK to the same validation error the
// normalizer raises. It fires for partial updates that move one date past
// the stored other.
func translate(err error) error {
	if postgres.IsCheckViolation(err, dateRangeConstraint) {
		return apperr.Validation("La fecha de fin debe ser posterior a la fecha de inicio")
	}
	return err
}

