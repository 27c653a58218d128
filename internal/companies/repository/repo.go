package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/calendario-app/calendario-backend/internal/companies/domain"
	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
)

type Repo struct {
	db postgres.DBTX
}

func NewRepo(db postgres.DBTX) *Repo {
	return &Repo{db: db}
}

const columns = `id::text, owner_id, name, tax_id, country, address, phone, email, website, logo, created_at, updated_at`

func scan(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.TaxID, &c.Country, &c.Address, &c.Phone,
		&c.Email, &c.Website, &c.Logo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context, ownerID string) ([]domain.Company, error) {
	q := `select ` + columns + ` from companies where owner_id = $1 order by name asc`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Company, 0, 16)
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, ownerID, id string) (*domain.Company, error) {
	q := `select ` + columns + ` from companies where id = $1::uuid and owner_id = $2`
	c, err := scan(r.db.QueryRow(ctx, q, id, ownerID))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *Repo) ExistsByName(ctx context.Context, ownerID, name, excludeID string) (bool, error) {
	const q = `
select exists (
  select 1 from companies
  where owner_id = $1 and name = $2 and ($3 = '' or id::text <> $3)
);
`
	var exists bool
	err := r.db.QueryRow(ctx, q, ownerID, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *Repo) Create(ctx context.Context, c *domain.Company) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	const q = `
insert into companies (id, owner_id, name, tax_id, country, address, phone, email, website, logo)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
returning created_at, updated_at;
`
	return r.db.QueryRow(ctx, q,
		c.ID, c.OwnerID, c.Name, c.TaxID, c.Country, c.Address, c.Phone, c.Email, c.Website, c.Logo,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Replace overwrites every editable column; absent optionals become NULL.
func (r *Repo) Replace(ctx context.Context, ownerID, id string, f domain.Fields) (*domain.Company, error) {
	q := `
update companies
set name = $3, tax_id = $4, country = $5, address = $6, phone = $7,
    email = $8, website = $9, logo = $10, updated_at = now()
where id = $1::uuid and owner_id = $2
returning ` + columns
	c, err := scan(r.db.QueryRow(ctx, q,
		id, ownerID, f.Name, f.TaxID, f.Country, f.Address, f.Phone, f.Email, f.Website, f.Logo,
	))
	if postgres.IsNoRows(err) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `delete from companies where id = $1::uuid and owner_id = $2;`
	ct, err := r.db.Exec(ctx, q, id, ownerID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
