package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario-app/calendario-backend/internal/auth"
	authdomain "github.com/calendario-app/calendario-backend/internal/auth/domain"
	"github.com/calendario-app/calendario-backend/internal/tasks/domain"
	"github.com/calendario-app/calendario-backend/internal/tasks/service"
)

type fakeRepo struct {
	rows map[string]domain.Task
}

func (r *fakeRepo) List(_ context.Context, ownerID string, _ domain.ListFilter) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, t := range r.rows {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, ownerID, id string) (*domain.Task, error) {
	t, ok := r.rows[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *fakeRepo) Create(_ context.Context, t *domain.Task) error {
	t.ID = uuid.NewString()
	r.rows[t.ID] = *t
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, ownerID, id string, p domain.Patch) (*domain.Task, error) {
	t, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	p.Apply(t)
	r.rows[id] = *t
	return t, nil
}

func (r *fakeRepo) Delete(_ context.Context, ownerID, id string) (bool, error) {
	t, ok := r.rows[id]
	if !ok || t.OwnerID != ownerID {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func newRouter(repo *fakeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/tasks", func(c *gin.Context) {
		auth.SetUser(c, &authdomain.User{FirebaseUID: "u1"})
		c.Next()
	})
	New(service.New(repo)).Register(g)
	return r
}

func seed(repo *fakeRepo, completed bool) string {
	id := uuid.NewString()
	repo.rows[id] = domain.Task{ID: id, OwnerID: "u1", Title: "Factura", Priority: domain.PriorityMedium, Completed: completed}
	return id
}

// toggle sends a PATCH; a negative length makes the request chunked.
func toggle(t *testing.T, r http.Handler, id string, body io.Reader, length int64) (int, domain.Task) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/tasks/"+id, body)
	req.Header.Set("Content-Type", "application/json")
	if length < 0 {
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env struct {
		Data domain.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr.Code, env.Data
}

func TestToggle(t *testing.T) {
	t.Run("sets value from a chunked body", func(t *testing.T) {
		repo := &fakeRepo{rows: map[string]domain.Task{}}
		id := seed(repo, true)

		code, task := toggle(t, newRouter(repo), id, strings.NewReader(`{"completed": true}`), -1)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, task.Completed)
		assert.True(t, repo.rows[id].Completed)
	})

	t.Run("sets value from a sized body", func(t *testing.T) {
		repo := &fakeRepo{rows: map[string]domain.Task{}}
		id := seed(repo, false)

		code, task := toggle(t, newRouter(repo), id, strings.NewReader(`{"completed": false}`), 0)
		assert.Equal(t, http.StatusOK, code)
		assert.False(t, task.Completed)
	})

	t.Run("flips without a body", func(t *testing.T) {
		repo := &fakeRepo{rows: map[string]domain.Task{}}
		id := seed(repo, false)

		code, task := toggle(t, newRouter(repo), id, nil, 0)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, task.Completed)
	})

	t.Run("flips with an empty chunked body", func(t *testing.T) {
		repo := &fakeRepo{rows: map[string]domain.Task{}}
		id := seed(repo, true)

		code, task := toggle(t, newRouter(repo), id, strings.NewReader(""), -1)
		assert.Equal(t, http.StatusOK, code)
		assert.False(t, task.Completed)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		repo := &fakeRepo{rows: map[string]domain.Task{}}
		id := seed(repo, false)

		code, _ := toggle(t, newRouter(repo), id, strings.NewReader(`{"completed":`), -1)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, repo.rows[id].Completed)
	})
}
