package signatures

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nostos-app/nostos/internal/client/models"
	"github.com/nostos-app/nostos/internal/dbx"
	"github.com/nostos-app/nostos/internal/timex"
)

// DefaultTTL is how long a cached signature stays valid. Re-signing is cheap
// for the machine but annoying for the user, hence the generous window.
const DefaultTTL = 24 * time.Hour

// signatureLength is the personal_sign output length (r || s || v).
const signatureLength = 65

// SQLiteRepository implements Repository over a local SQLite database using
// a dbx.DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db    dbx.DBTX
	ttl   time.Duration
	clock timex.Clock
}

// NewSQLiteRepository returns a repository with the default TTL and real clock.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, ttl: DefaultTTL, clock: timex.RealClock{}}
}

// NewSQLiteRepositoryWithClock allows tests to control TTL and time.
func NewSQLiteRepositoryWithClock(db dbx.DBTX, ttl time.Duration, clock timex.Clock) *SQLiteRepository {
	return &SQLiteRepository{db: db, ttl: ttl, clock: clock}
}

func (r *SQLiteRepository) Get(ctx context.Context, address, itemID string, purpose models.Purpose) ([]byte, error) {
	address, itemID = strings.ToLower(address), strings.ToLower(itemID)

	var signature []byte
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT signature, created_at FROM signatures WHERE address = ? AND item_id = ? AND purpose = ?`,
		address, itemID, string(purpose)).Scan(&signature, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signature: %w", err)
	}

	// Expired or corrupt rows are discarded on access and reported as absent.
	expired := r.clock.Now().UnixMilli()-createdAt > r.ttl.Milliseconds()
	corrupt := len(signature) != signatureLength
	if expired || corrupt {
		if err := r.delete(ctx, address, itemID, purpose); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return signature, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, address, itemID string, purpose models.Purpose, signature []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO signatures (address, item_id, purpose, signature, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(address, item_id, purpose) DO UPDATE SET
			signature = excluded.signature,
			created_at = excluded.created_at
	`, strings.ToLower(address), strings.ToLower(itemID), string(purpose), signature, r.clock.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set signature: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearForAddress(ctx context.Context, address string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM signatures WHERE address = ?`, strings.ToLower(address))
	if err != nil {
		return fmt.Errorf("failed to clear signatures for address: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM signatures`)
	if err != nil {
		return fmt.Errorf("failed to clear signatures: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) delete(ctx context.Context, address, itemID string, purpose models.Purpose) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM signatures WHERE address = ? AND item_id = ? AND purpose = ?`,
		address, itemID, string(purpose))
	if err != nil {
		return fmt.Errorf("failed to delete signature: %w", err)
	}
	return nil
}
