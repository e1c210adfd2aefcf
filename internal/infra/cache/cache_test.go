package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestDashboardCache(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniredis(t)
	c := NewDashboardCache(rdb)

	_, ok, err := c.GetSummary(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &entity.DashboardSummary{TotalLeads: 12, ConversionRate: 25.5}
	require.NoError(t, c.SetSummary(ctx, in, time.Minute))

	got, ok, err := c.GetSummary(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12, got.TotalLeads)
	assert.Equal(t, 25.5, got.ConversionRate)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.GetSummary(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetSummary(ctx, in, time.Minute))
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(dashboardKey))
}

func TestDashboardCache_CorruptEntry(t *testing.T) {
	mr, rdb := newMiniredis(t)
	require.NoError(t, mr.Set(dashboardKey, "{not json"))

	_, ok, err := NewDashboardCache(rdb).GetSummary(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDashboardCache_TransportError(t *testing.T) {
	rdb, rm := redismock.NewClientMock()
	rm.ExpectGet(dashboardKey).SetErr(errors.New("connection refused"))

	_, ok, err := NewDashboardCache(rdb).GetSummary(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, ok)
	assert.NoError(t, rm.ExpectationsWereMet())
}

func TestTokenDenylist(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniredis(t)
	d := NewTokenDenylist(rdb)
	id := entity.Identity{UserID: "user-1", TokenID: "jti-1", IssuedAt: time.Now()}

	revoked, err := d.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = d.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL(revokedPrefix+"jti-1").Seconds(), 5)

	require.NoError(t, d.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(revokedPrefix+"jti-2"))
}

func TestTokenDenylist_RevokeUser(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newMiniredis(t)
	d := NewTokenDenylist(rdb)
	d.SessionTTL = 2 * time.Hour
	at := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	d.now = func() time.Time { return at }

	before := entity.Identity{UserID: "user-1", TokenID: "jti-old", IssuedAt: at.Add(-time.Hour)}
	sameSecond := entity.Identity{UserID: "user-1", TokenID: "jti-same", IssuedAt: at}
	after := entity.Identity{UserID: "user-1", TokenID: "jti-new", IssuedAt: at.Add(time.Second)}
	other := entity.Identity{UserID: "user-2", TokenID: "jti-other", IssuedAt: at.Add(-time.Hour)}

	require.NoError(t, d.RevokeUser(ctx, "user-1"))
	assert.InDelta(t, (2 * time.Hour).Seconds(), mr.TTL(userRevokedPrefix+"user-1").Seconds(), 1)

	for _, tt := range []struct {
		name string
		id   entity.Identity
		want bool
	}{
		{"issued before", before, true},
		{"issued same second", sameSecond, true},
		{"issued after", after, false},
		{"other user", other, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			revoked, err := d.IsRevoked(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, revoked)
		})
	}
}

func TestTokenDenylist_TransportError(t *testing.T) {
	rdb, rm := redismock.NewClientMock()
	d := NewTokenDenylist(rdb)
	rm.ExpectMGet(revokedPrefix+"jti-1", userRevokedPrefix+"user-1").SetErr(errors.New("connection refused"))

	_, err := d.IsRevoked(context.Background(), entity.Identity{UserID: "user-1", TokenID: "jti-1"})

	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, rm.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	_, rdb := newMiniredis(t)
	assert.NoError(t, Ping(context.Background(), rdb))

	rdb2, rm := redismock.NewClientMock()
	rm.ExpectPing().SetErr(errors.New("down"))
	assert.Error(t, Ping(context.Background(), rdb2))
}
