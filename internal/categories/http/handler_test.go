package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario-app/calendario-backend/internal/auth"
	authdomain "github.com/calendario-app/calendario-backend/internal/auth/domain"
	"github.com/calendario-app/calendario-backend/internal/categories/domain"
	"github.com/calendario-app/calendario-backend/internal/categories/service"
)

type fakeRepo struct {
	rows map[string]domain.Category
}

func (r *fakeRepo) ExistsByName(_ context.Context, ownerID, name, excludeID string) (bool, error) {
	for _, c := range r.rows {
		if c.OwnerID == ownerID && c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) List(_ context.Context, ownerID string) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range r.rows {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, ownerID, id string) (*domain.Category, error) {
	c, ok := r.rows[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *fakeRepo) Create(_ context.Context, c *domain.Category) error {
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, ownerID, id string, ch domain.Changes) (*domain.Category, error) {
	c, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if ch.Name != nil {
		c.Name = *ch.Name
	}
	if ch.Color != nil {
		c.Color = *ch.Color
	}
	r.rows[id] = *c
	return c, nil
}

func (r *fakeRepo) Delete(_ context.Context, ownerID, id string) (bool, error) {
	c, ok := r.rows[id]
	if !ok || c.OwnerID != ownerID {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

type noUsage struct{}

func (noUsage) CountByCategory(context.Context, string, string) (int, error) { return 0, nil }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newRouter(repo *fakeRepo, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/categories", func(c *gin.Context) {
		if uid != "" {
			auth.SetUser(c, &authdomain.User{FirebaseUID: uid})
		}
		c.Next()
	})
	New(service.New(repo, noUsage{}, noUsage{})).Register(g)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr.Code, env
}

func TestHandler_CreateAndGet(t *testing.T) {
	repo := &fakeRepo{rows: map[string]domain.Category{}}
	r := newRouter(repo, "u1")

	code, env := do(t, r, http.MethodPost, "/api/categories", `{"name":"Trabajo","color":"#3b82f6"}`)
	require.Equal(t, http.StatusCreated, code)
	require.True(t, env.Success)

	var created domain.Category
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "u1", created.OwnerID)

	code, env = do(t, r, http.MethodGet, "/api/categories/"+created.ID, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = do(t, r, http.MethodPost, "/api/categories", `{"name":"Trabajo","color":"#000000"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Ya existe una categoría con este nombre en tu cuenta", env.Error)
}

func TestHandler_NotFoundAndValidation(t *testing.T) {
	r := newRouter(&fakeRepo{rows: map[string]domain.Category{}}, "u1")

	code, env := do(t, r, http.MethodGet, "/api/categories/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Categoría no encontrada", env.Error)

	code, env = do(t, r, http.MethodDelete, "/api/categories/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)

	code, _ = do(t, r, http.MethodPost, "/api/categories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodPost, "/api/categories", `{"color":"#3b82f6"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "El nombre es requerido", env.Error)
}

func TestHandler_WithoutUser(t *testing.T) {
	r := newRouter(&fakeRepo{rows: map[string]domain.Category{}}, "")

	code, env := do(t, r, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}
