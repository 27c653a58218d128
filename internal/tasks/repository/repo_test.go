package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario-app/calendario-backend/internal/payload"
	"github.com/calendario-app/calendario-backend/internal/tasks/domain"
)

var cols = []string{
	"id", "owner_id", "title", "description", "due_date", "completed", "priority",
	"category", "color", "created_at", "updated_at",
}

func setupRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepo(mock), mock
}

func TestRepo_List_DayWindowAndOrdering(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	// 22:00 at UTC-5 is already the next day in UTC.
	bogota := time.FixedZone("COT", -5*60*60)
	day := time.Date(2025, 3, 10, 22, 0, 0, 0, bogota)
	from := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	due := from.Add(9 * time.Hour)
	mock.ExpectQuery(`from tasks where owner_id = \$1 and completed = \$2 and priority = \$3 and due_date >= \$4 and due_date < \$5 ` +
		`order by due_date asc nulls first, case priority when 'high' then 3 when 'medium' then 2 else 1 end desc, created_at asc`).
		WithArgs("u1", false, "high", from, to).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("id-1", "u1", "Enviar factura", nil, &due, false, "high", nil, nil, now, now))

	completed := false
	out, err := repo.List(context.Background(), "u1", domain.ListFilter{
		Completed: &completed,
		Priority:  domain.PriorityHigh,
		Day:       &day,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.PriorityHigh, out[0].Priority)
	require.NotNil(t, out[0].DueDate)
	assert.Nil(t, out[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List_OwnerOnly(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`from tasks where owner_id = \$1 order by`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(cols))

	out, err := repo.List(context.Background(), "u1", domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_ClearsOptionalColumns(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(`update tasks set due_date = \$1, category = \$2, updated_at = now\(\) where id = \$3::uuid and owner_id = \$4 returning`).
		WithArgs((*time.Time)(nil), (*string)(nil), "id-1", "u1").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("id-1", "u1", "Enviar factura", nil, nil, false, "medium", nil, nil, now, now))

	task, err := repo.Update(context.Background(), "u1", "id-1", domain.Patch{
		DueDate:  payload.Clear[time.Time](),
		Category: payload.Clear[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Update_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	done := true

	mock.ExpectQuery(`update tasks set completed = \$1`).
		WithArgs(true, "id-1", "u2").
		WillReturnRows(pgxmock.NewRows(cols))

	_, err := repo.Update(context.Background(), "u2", "id-1", domain.Patch{Completed: &done})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Create(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(`insert into tasks`).
		WithArgs(pgxmock.AnyArg(), "u1", "Llamar", (*string)(nil), (*time.Time)(nil), false, "medium", (*string)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	task := &domain.Task{OwnerID: "u1", Title: "Llamar", Priority: domain.PriorityMedium}
	require.NoError(t, repo.Create(context.Background(), task))
	assert.NotEmpty(t, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_CountByCategory(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`select count\(\*\) from tasks where owner_id = \$1 and category = \$2`).
		WithArgs("u1", "Casa").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByCategory(context.Background(), "u1", "Casa")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
