package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/auth/domain"
	"github.com/calendario-app/calendario-backend/internal/httpx"
)

// Verifier checks a bearer credential with the identity provider
type Verifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// UserResolver loads the local user for a verified identity
type UserResolver interface {
	ResolveUser(ctx context.Context, uid string) (*domain.User, error)
}

var errMissingToken = errors.New("missing authorization token")

// FirebaseAuthMiddleware validates Firebase ID tokens and stores the identity.
// Every failure answers 401; the log line tells a misconfigured provider
// apart from a rejected token.
func FirebaseAuthMiddleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httpx.Abort(c, "auth.verify", apperr.Unauthenticated(errMissingToken))
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrIdentityUnavailable) {
				err = fmt.Errorf("identity provider unavailable: %w", err)
			}
			httpx.Abort(c, "auth.verify", apperr.Unauthenticated(err))
			return
		}
		if strings.TrimSpace(id.UID) == "" {
			httpx.Abort(c, "auth.verify", apperr.Unauthenticated(fmt.Errorf("%w: empty subject", domain.ErrTokenRejected)))
			return
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}

// RequireUser resolves the local user for the verified identity. It must run
// after FirebaseAuthMiddleware and before any resource handler.
func RequireUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := auth.UserFirebaseUID(c)
		if uid == "" {
			httpx.Abort(c, "auth.resolve", apperr.Unauthenticated(errMissingToken))
			return
		}

		user, err := resolver.ResolveUser(c.Request.Context(), uid)
		if err != nil {
			httpx.Abort(c, "auth.resolve", err)
			return
		}

		auth.SetUser(c, user)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
