// Package tokencache memoizes verified ID tokens in Redis so repeated
// requests with the same token skip the identity provider round trip.
package tokencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/calendario-app/calendario-backend/internal/auth/domain"
	"github.com/calendario-app/calendario-backend/internal/logging"
)

const keyPrefix = "auth:token:" // auth:token:{sha256(token)}

// Verifier is the identity provider being cached.
type Verifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// CachedVerifier verifies through Redis first and the wrapped verifier second.
// Only successful verifications are cached, never longer than the token lives.
type CachedVerifier struct {
	client *redis.Client
	next   Verifier
	ttl    time.Duration
	now    func() time.Time
}

func New(client *redis.Client, next Verifier, ttl time.Duration) *CachedVerifier {
	return &CachedVerifier{
		client: client,
		next:   next,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (domain.Identity, error) {
	key := v.key(token)

	data, err := v.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var id domain.Identity
		if jsonErr := json.Unmarshal(data, &id); jsonErr == nil && v.now().Before(id.ExpiresAt) {
			return id, nil
		}
	case !errors.Is(err, redis.Nil):
		// A cache outage must not lock users out.
		logging.FromContext(ctx).LogWarnf("tokencache.get", "error=%v", err)
	}

	id, err := v.next.Verify(ctx, token)
	if err != nil {
		return domain.Identity{}, err
	}

	ttl := v.ttl
	if !id.ExpiresAt.IsZero() {
		if remaining := id.ExpiresAt.Sub(v.now()); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return id, nil
	}

	payload, err := json.Marshal(id)
	if err != nil {
		return id, nil
	}
	if err := v.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logging.FromContext(ctx).LogWarnf("tokencache.set", "error=%v", err)
	}
	return id, nil
}

func (v *CachedVerifier) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
