package usecase

import (
	"context"
	"io"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(u *entity.User) (token string, claims entity.Identity, err error)
}

// TokenRevoker denylists a token id until its natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
}

// SessionRevoker invalidates every token already issued to a user.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID string) error
}

type QueueProducerInterface interface {
	PublishFollowUpTask(ctx context.Context, payload queue.FollowUpTaskPayload) error
}

// DashboardCache reports a miss as (nil, false, nil).
type DashboardCache interface {
	GetSummary(ctx context.Context) (*entity.DashboardSummary, bool, error)
	SetSummary(ctx context.Context, s *entity.DashboardSummary, ttl time.Duration) error
}

type FileStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (path string, size int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}
