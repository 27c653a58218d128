package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/events/domain"
)

type memRepo struct {
	rows    map[string]domain.Event
	creates int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]domain.Event{}} }

func (r *memRepo) List(_ context.Context, ownerID string, f domain.ListFilter) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.rows {
		if e.OwnerID != ownerID {
			continue
		}
		if f.IsWork != nil && e.IsWork != *f.IsWork {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, ownerID, id string) (*domain.Event, error) {
	e, ok := r.rows[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *memRepo) Create(_ context.Context, e *domain.Event) error {
	r.creates++
	e.ID = uuid.NewString()
	r.rows[e.ID] = *e
	return nil
}

func (r *memRepo) Update(ctx context.Context, ownerID, id string, p domain.Patch) (*domain.Event, error) {
	e, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	p.Apply(e)
	r.rows[id] = *e
	return e, nil
}

func (r *memRepo) SetWorkStatus(ctx context.Context, ownerID, id string, status domain.WorkStatus) (*domain.Event, error) {
	e, err := r.Get(ctx, ownerID, id)
	if err != nil || !e.IsWork {
		return nil, domain.ErrNotFound
	}
	e.WorkStatus = &status
	r.rows[id] = *e
	return e, nil
}

func (r *memRepo) Delete(_ context.Context, ownerID, id string) (bool, error) {
	e, ok := r.rows[id]
	if !ok || e.OwnerID != ownerID {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func input(t *testing.T, body string) domain.Input {
	t.Helper()
	var in domain.Input
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

const workEvent = `{"title": "Boda", "startDate": "2024-03-01T15:00:00Z", "endDate": "2024-03-01T23:00:00Z",
	"category": "Trabajo", "color": "#ef4444", "isWork": true, "companyId": "c1", "price": 500,
	"includesExpenses": true, "expenses": 40, "workStatus": "in_progress"}`

func TestCreate_WorkWithoutCompanyIsDemoted(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo)

	e, err := svc.Create(context.Background(), "u1", input(t, `{"title": "x", "startDate": "2024-01-01",
		"endDate": "2024-01-01", "category": "c", "color": "#000000", "isWork": true, "companyId": "", "price": 100}`))
	require.NoError(t, err)

	stored := repo.rows[e.ID]
	assert.False(t, stored.IsWork)
	assert.Nil(t, stored.Price)
	assert.Nil(t, stored.CompanyID)
	assert.Equal(t, "u1", stored.OwnerID)
}

func TestCreate_InvertedRangeStoresNothing(t *testing.T) {
	repo := newMemRepo()
	svc := New(repo)

	_, err := svc.Create(context.Background(), "u1", input(t, `{"title": "x", "startDate": "2024-01-02",
		"endDate": "2024-01-01", "category": "c", "color": "#000000"}`))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Zero(t, repo.creates)
}

func TestCreate_RoundTrip(t *testing.T) {
	svc := New(newMemRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", input(t, workEvent))
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, domain.WorkInProgress, *got.WorkStatus)
	assert.Equal(t, 500.0, *got.Price)
	assert.Equal(t, 40.0, *got.Expenses)
}

func TestUpdate_PartialWorkChangeKeepsOtherWorkFields(t *testing.T) {
	svc := New(newMemRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", input(t, workEvent))
	require.NoError(t, err)

	got, err := svc.Update(ctx, "u1", created.ID, input(t, `{"price": "650"}`))
	require.NoError(t, err)
	assert.Equal(t, 650.0, *got.Price)
	assert.Equal(t, "c1", *got.CompanyID)
	assert.Equal(t, 40.0, *got.Expenses)

	got, err = svc.Update(ctx, "u1", created.ID, input(t, `{"includesExpenses": false}`))
	require.NoError(t, err)
	assert.False(t, *got.IncludesExpenses)
	assert.Nil(t, got.Expenses)

	got, err = svc.Update(ctx, "u1", created.ID, input(t, `{"isWork": false}`))
	require.NoError(t, err)
	assert.False(t, got.IsWork)
	assert.Nil(t, got.CompanyID)
	assert.Nil(t, got.WorkStatus)
	assert.Nil(t, got.Price)
	assert.Nil(t, got.IncludesExpenses)
}

func TestUpdate_SamePayloadTwice(t *testing.T) {
	svc := New(newMemRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", input(t, workEvent))
	require.NoError(t, err)

	body := `{"title": "Boda civil", "price": "abc", "workStatus": "paid", "location": "Iglesia"}`
	first, err := svc.Update(ctx, "u1", created.ID, input(t, body))
	require.NoError(t, err)
	second, err := svc.Update(ctx, "u1", created.ID, input(t, body))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Nil(t, second.Price)
}

func TestUpdate_DateRange(t *testing.T) {
	svc := New(newMemRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", input(t, workEvent))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u1", created.ID, input(t, `{"startDate": "2024-03-02", "endDate": "2024-03-01"}`))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSetWorkStatus(t *testing.T) {
	svc := New(newMemRepo())
	ctx := context.Background()

	work, err := svc.Create(ctx, "u1", input(t, workEvent))
	require.NoError(t, err)
	plain, err := svc.Create(ctx, "u1", input(t, `{"title": "x", "startDate": "2024-01-01",
		"endDate": "2024-01-01", "category": "c", "color": "#000000"}`))
	require.NoError(t, err)

	// Labels move in any direction.
	for _, s := range []string{"paid", "pending", "in_progress"} {
		got, err := svc.SetWorkStatus(ctx, "u1", work.ID, s)
		require.NoError(t, err)
		assert.Equal(t, domain.WorkStatus(s), *got.WorkStatus)
	}

	_, err = svc.SetWorkStatus(ctx, "u1", work.ID, "cancelled")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SetWorkStatus(ctx, "u1", plain.ID, "paid")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.SetWorkStatus(ctx, "u2", work.ID, "paid")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestOtherOwnerSeesNotFound(t *testing.T) {
	svc := New(newMemRepo())
	ctx := context.Background()

	e, err := svc.Create(ctx, "u2", input(t, workEvent))
	require.NoError(t, err)

	for _, id := range []string{e.ID, uuid.NewString(), "42"} {
		_, err := svc.Get(ctx, "u1", id)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		_, err = svc.Update(ctx, "u1", id, input(t, `{"title": "mine"}`))
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		assert.True(t, apperr.Is(svc.Delete(ctx, "u1", id), apperr.KindNotFound))
	}
}
