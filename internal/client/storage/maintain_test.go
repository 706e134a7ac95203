package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestMaintain_DropsExpiredSignaturesAndTrimsActivity(t *testing.T) {
	ctx := context.Background()
	db, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	ttl := 24 * time.Hour

	fresh := clock.now.UnixMilli() - time.Hour.Milliseconds()
	stale := clock.now.UnixMilli() - (25 * time.Hour).Milliseconds()
	for i, createdAt := range []int64{fresh, stale} {
		_, err := db.ExecContext(ctx,
			`INSERT INTO signatures (address, item_id, purpose, signature, created_at) VALUES (?, ?, 'item', x'00', ?)`,
			"0xowner", fmt.Sprintf("0x%02d", i), createdAt)
		require.NoError(t, err)
	}

	for i := 0; i < activityKeep+10; i++ {
		_, err := db.ExecContext(ctx,
			`INSERT INTO activity (id, kind, item_id, address, created_at) VALUES (?, 'registered', '0x01', '0xowner', ?)`,
			fmt.Sprintf("id-%04d", i), int64(i))
		require.NoError(t, err)
	}

	require.NoError(t, Maintain(ctx, db, clock, ttl))

	var sigCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM signatures`).Scan(&sigCount))
	assert.Equal(t, 1, sigCount)

	var actCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM activity`).Scan(&actCount))
	assert.Equal(t, activityKeep, actCount)

	// The newest rows survive the trim.
	var oldest string
	require.NoError(t, db.QueryRow(`SELECT id FROM activity ORDER BY created_at LIMIT 1`).Scan(&oldest))
	assert.Equal(t, "id-0010", oldest)
}
