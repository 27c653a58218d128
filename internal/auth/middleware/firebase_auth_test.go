package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/auth/domain"
)

type fakeVerifier map[string]domain.Identity

func (f fakeVerifier) Verify(_ context.Context, token string) (domain.Identity, error) {
	if f == nil {
		return domain.Identity{}, domain.ErrIdentityUnavailable
	}
	id, ok := f[token]
	if !ok {
		return domain.Identity{}, domain.ErrTokenRejected
	}
	return id, nil
}

type fakeResolver map[string]*domain.User

func (f fakeResolver) ResolveUser(_ context.Context, uid string) (*domain.User, error) {
	u, ok := f[uid]
	if !ok {
		return nil, apperr.Unauthenticated(domain.ErrUserNotFound)
	}
	return u, nil
}

func newRouter(v Verifier, r UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", FirebaseAuthMiddleware(v), RequireUser(r), func(c *gin.Context) {
		owner, err := auth.OwnerID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"owner": owner})
	})
	return router
}

func get(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	verifier := fakeVerifier{"good": {UID: "u1"}, "unregistered": {UID: "u9"}}
	resolver := fakeResolver{"u1": {FirebaseUID: "u1"}}
	router := newRouter(verifier, resolver)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"rejected token", "Bearer forged", http.StatusUnauthorized},
		{"no local user", "Bearer unregistered", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(router, tt.header)
			assert.Equal(t, tt.status, rr.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			if tt.status == http.StatusOK {
				assert.Equal(t, "u1", body["owner"])
				return
			}
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "No autenticado", body["error"])
		})
	}
}

func TestFirebaseAuthMiddleware_ProviderUnavailable(t *testing.T) {
	router := newRouter(fakeVerifier(nil), fakeResolver{})

	rr := get(router, "Bearer anything")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "  Bearer   abc.def  ")

	assert.Equal(t, "abc.def", extractToken(c))
}
