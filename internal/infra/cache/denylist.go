package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	revokedPrefix     = "token:revoked:"
	userRevokedPrefix = "user:sessions_revoked:"

	defaultSessionTTL = 24 * time.Hour
)

// TokenDenylist keeps the jti of revoked tokens until they expire. It also
// records, per user, the moment all earlier sessions were revoked.
type TokenDenylist struct {
	rdb redis.UniversalClient
	now func() time.Time

	// SessionTTL must be at least the access token lifetime.
	SessionTTL time.Duration
}

func NewTokenDenylist(rdb redis.UniversalClient) *TokenDenylist {
	return &TokenDenylist{rdb: rdb, now: time.Now, SessionTTL: defaultSessionTTL}
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeUser rejects every token issued to userID up to now.
func (d *TokenDenylist) RevokeUser(ctx context.Context, userID string) error {
	ttl := d.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if err := d.rdb.Set(ctx, userRevokedPrefix+userID, d.now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was revoked by id or issued no later
// than its user's sessions were revoked. Both keys are read in one round trip.
func (d *TokenDenylist) IsRevoked(ctx context.Context, id entity.Identity) (bool, error) {
	vals, err := d.rdb.MGet(ctx, revokedPrefix+id.TokenID, userRevokedPrefix+id.UserID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	if len(vals) != 2 {
		return false, fmt.Errorf("failed to check token: unexpected reply of %d values", len(vals))
	}
	if id.TokenID != "" && vals[0] != nil {
		return true, nil
	}

	raw, ok := vals[1].(string)
	if !ok {
		return false, nil
	}
	revokedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to check token: bad revocation marker %q", raw)
	}
	return id.IssuedAt.Unix() <= revokedAt, nil
}
