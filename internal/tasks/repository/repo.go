package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
	"github.com/calendario-app/calendario-backend/internal/tasks/domain"
)

type Repo struct {
	db postgres.DBTX
}

func NewRepo(db postgres.DBTX) *Repo {
	return &Repo{db: db}
}

const columns = `id::text, owner_id, title, description, due_date, completed, priority, category, color, created_at, updated_at`

// Tasks without a due date come first, then by date, then high priority first.
const ordering = `order by due_date asc nulls first,
  case priority when 'high' then 3 when 'medium' then 2 else 1 end desc,
  created_at asc`

func scan(row pgx.Row) (*domain.Task, error) {
	var (
		t        domain.Task
		priority string
	)
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.DueDate, &t.Completed, &priority,
		&t.Category, &t.Color, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	return &t, nil
}

func (r *Repo) List(ctx context.Context, ownerID string, f domain.ListFilter) ([]domain.Task, error) {
	where := []string{"owner_id = $1"}
	args := []any{ownerID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Completed != nil {
		add("completed = $%d", *f.Completed)
	}
	if f.Priority != "" {
		add("priority = $%d", string(f.Priority))
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Day != nil {
		y, m, d := f.Day.UTC().Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		add("due_date >= $%d", start)
		add("due_date < $%d", start.AddDate(0, 0, 1))
	}

	q := `select ` + columns + ` from tasks where ` + strings.Join(where, " and ") + ` ` + ordering
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Task, 0, 32)
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	q := `select ` + columns + ` from tasks where id = $1::uuid and owner_id = $2`
	t, err := scan(r.db.QueryRow(ctx, q, id, ownerID))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (r *Repo) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	const q = `
insert into tasks (id, owner_id, title, description, due_date, completed, priority, category, color)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9)
returning created_at, updated_at;
`
	return r.db.QueryRow(ctx, q,
		t.ID, t.OwnerID, t.Title, t.Description, t.DueDate, t.Completed, string(t.Priority), t.Category, t.Color,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *Repo) Update(ctx context.Context, ownerID, id string, p domain.Patch) (*domain.Task, error) {
	var set postgres.Assignments
	if p.Title != nil {
		set.Set("title", *p.Title)
	}
	if p.Description.Set {
		set.Set("description", p.Description.Value)
	}
	if p.DueDate.Set {
		set.Set("due_date", p.DueDate.Value)
	}
	if p.Completed != nil {
		set.Set("completed", *p.Completed)
	}
	if p.Priority != nil {
		set.Set("priority", string(*p.Priority))
	}
	if p.Category.Set {
		set.Set("category", p.Category.Value)
	}
	if p.Color.Set {
		set.Set("color", p.Color.Value)
	}
	if set.Len() == 0 {
		return r.Get(ctx, ownerID, id)
	}

	clause, args := set.Clause()
	q := `update tasks set ` + clause + `, updated_at = now()
where id = ` + set.Placeholder(1) + `::uuid and owner_id = ` + set.Placeholder(2) + `
returning ` + columns
	args = append(args, id, ownerID)

	t, err := scan(r.db.QueryRow(ctx, q, args...))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from tasks where id = $1::uuid and owner_id = $2;`
	ct, err := r.db.Exec(ctx, q, id, ownerID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) CountByCategory(ctx context.Context, ownerID, category string) (int, error) {
	const q = `select count(*) from tasks where owner_id = $1 and category = $2;`
	var n int
	err := r.db.QueryRow(ctx, q, ownerID, category).Scan(&n)
	return n, err
}
