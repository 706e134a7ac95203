package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/nostos-app/nostos/internal/dbx"
	"github.com/nostos-app/nostos/internal/timex"
)

// activityKeep is how many activity rows survive a maintenance sweep.
const activityKeep = 500

// Maintain runs startup housekeeping in one transaction: expired signature
// rows are dropped and the activity log is trimmed to its retention limit.
// Both caches also expire lazily on access; this keeps the file from
// growing between sessions.
func Maintain(ctx context.Context, db *sql.DB, clock timex.Clock, signatureTTL time.Duration) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cutoff := clock.Now().UnixMilli() - signatureTTL.Milliseconds()
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM signatures WHERE created_at < ?`, cutoff); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`DELETE FROM activity WHERE id NOT IN (
				SELECT id FROM activity ORDER BY created_at DESC, id LIMIT ?
			)`, activityKeep)
		return err
	})
}
