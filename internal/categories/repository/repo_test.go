package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario-app/calendario-backend/internal/categories/domain"
	"github.com/calendario-app/calendario-backend/internal/storage/postgres"
)

var cols = []string{"id", "owner_id", "name", "color", "created_at", "updated_at"}

func setupRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepo(mock), mock
}

func TestRepo_List(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(`from categories\s+where owner_id = \$1\s+order by name asc`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("id-1", "u1", "Casa", "#10b981", now, now).
			AddRow("id-2", "u1", "Trabajo", "#3b82f6", now, now))

	out, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Casa", out[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Get_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`where id = \$1::uuid and owner_id = \$2`).
		WithArgs("id-1", "u1").
		WillReturnRows(pgxmock.NewRows(cols))

	_, err := repo.Get(context.Background(), "u1", "id-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ExistsByName(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`select exists`).
		WithArgs("u1", "Trabajo", "id-9").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByName(context.Background(), "u1", "Trabajo", "id-9")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		mock.ExpectQuery(`insert into categories`).
			WithArgs(pgxmock.AnyArg(), "u1", "Trabajo", "#3b82f6").
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		c := &domain.Category{OwnerID: "u1", Name: "Trabajo", Color: "#3b82f6"}
		require.NoError(t, repo.Create(context.Background(), c))
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, now, c.CreatedAt)
	})

	t.Run("surfaces unique violations", func(t *testing.T) {
		mock.ExpectQuery(`insert into categories`).
			WithArgs(pgxmock.AnyArg(), "u1", "Trabajo", "#3b82f6").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "categories_owner_name_key"})

		err := repo.Create(context.Background(), &domain.Category{OwnerID: "u1", Name: "Trabajo", Color: "#3b82f6"})
		assert.True(t, postgres.IsUniqueViolation(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_OnlyPresentFields(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()
	color := "#000000"

	mock.ExpectQuery(`update categories set color = \$1, updated_at = now\(\)\s+where id = \$2::uuid and owner_id = \$3`).
		WithArgs(color, "id-1", "u1").
		WillReturnRows(pgxmock.NewRows(cols).AddRow("id-1", "u1", "Trabajo", color, now, now))

	c, err := repo.Update(context.Background(), "u1", "id-1", domain.Changes{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, color, c.Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Delete(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(`delete from categories`).
		WithArgs("id-1", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), "u1", "id-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	mock.ExpectExec(`delete from categories`).
		WithArgs("id-2", "u1").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.Delete(context.Background(), "u1", "id-2")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
