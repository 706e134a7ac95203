package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nostos-app/nostos/internal/client/models"
	"github.com/nostos-app/nostos/internal/dbx"
	"github.com/nostos-app/nostos/internal/timex"
)

// SQLiteRepository implements Repository over a dbx.DBTX.
type SQLiteRepository struct {
	db    dbx.DBTX
	clock timex.Clock
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, clock: timex.RealClock{}}
}

func NewSQLiteRepositoryWithClock(db dbx.DBTX, clock timex.Clock) *SQLiteRepository {
	return &SQLiteRepository{db: db, clock: clock}
}

func (r *SQLiteRepository) Add(ctx context.Context, a *models.Activity) error {
	a.ID = uuid.NewString()
	a.CreatedAt = r.clock.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity (id, kind, item_id, address, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.ID, string(a.Kind), strings.ToLower(a.ItemID), strings.ToLower(a.Address), a.Details, a.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, item_id, address, details, created_at
		FROM activity ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select activity: %w", err)
	}
	defer rows.Close()

	var result []models.Activity
	for rows.Next() {
		var a models.Activity
		var kind string
		var createdAt int64
		if err := rows.Scan(&a.ID, &kind, &a.ItemID, &a.Address, &a.Details, &createdAt); err != nil {
			return nil, err
		}
		a.Kind = models.ActivityKind(kind)
		a.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
