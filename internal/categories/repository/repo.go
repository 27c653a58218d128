package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/calendario-app/calendario-backend/internal/categories/domain"
	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
)

type Repo struct {
	db postgres.DBTX
}

func NewRepo(db postgres.DBTX) *Repo {
	return &Repo{db: db}
}

const columns = `id::text, owner_id, name, color, created_at, updated_at`

func scan(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context, ownerID string) ([]domain.Category, error) {
	const q = `
select ` + columns + `
from categories
where owner_id = $1
order by name asc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0, 16)
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	const q = `
select ` + columns + `
from categories
where id = $1::uuid and owner_id = $2;
`
	c, err := scan(r.db.QueryRow(ctx, q, id, ownerID))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *Repo) ExistsByName(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	const q = `
select exists (
  select 1 from categories
  where owner_id = $1 and name = $2 and ($3 = '' or id::text <> $3)
);
`
	var exists bool
	err := r.db.QueryRow(ctx, q, ownerID, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *Repo) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	const q = `
insert into categories (id, owner_id, name, color)
values ($1::uuid, $2, $3, $4)
returning created_at, updated_at;
`
	return r.db.QueryRow(ctx, q, c.ID, c.OwnerID, c.Name, c.Color).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Update applies ch to the owner's category. owner_id is part of the match,
// never of the assignment.
func (r *Repo) Update(ctx context.Context, ownerID, id string, ch domain.Changes) (*domain.Category, error) {
	var set postgres.Assignments
	if ch.Name != nil {
		set.Set("name", *ch.Name)
	}
	if ch.Color != nil {
		set.Set("color", *ch.Color)
	}
	if set.Len() == 0 {
		return r.Get(ctx, ownerID, id)
	}

	clause, args := set.Clause()
	q := `update categories set ` + clause + `, updated_at = now()
where id = ` + set.Placeholder(1) + `::uuid and owner_id = ` + set.Placeholder(2) + `
returning ` + columns
	args = append(args, id, ownerID)

	c, err := scan(r.db.QueryRow(ctx, q, args...))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from categories where id = $1::uuid and owner_id = $2;`
	ct, err := r.db.Exec(ctx, q, id, ownerID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
