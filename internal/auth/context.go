package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/auth/domain"
)

var errNoUser = errors.New("no resolved user in context")

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxIdentity    = "identity"
	CtxUser        = "user"
)

// SetIdentity stores a verified identity in the Gin context
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(CtxFirebaseUID, id.UID)
	c.Set(CtxEmail, id.Email)
	c.Set(CtxIdentity, id)
}

// SetUser stores the resolved local user in the Gin context
func SetUser(c *gin.Context, u *domain.User) {
	c.Set(CtxUser, u)
}

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by FirebaseAuthMiddleware and is the owner id of every resource
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// CurrentIdentity returns the identity set by FirebaseAuthMiddleware
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}

// CurrentUser returns the user set by RequireUser, or nil
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// OwnerID returns the owner id for resource handlers. It fails when the
// route was mounted without RequireUser.
func OwnerID(c *gin.Context) (string, error) {
	if u := CurrentUser(c); u != nil && u.FirebaseUID != "" {
		return u.FirebaseUID, nil
	}
	return "", apperr.Unauthenticated(errNoUser)
}
