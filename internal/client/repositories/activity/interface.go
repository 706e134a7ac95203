package activity

import (
	"context"

	"github.com/nostos-app/nostos/internal/client/models"
)

// Repository persists the local activity log.
type Repository interface {
	// Add appends a record. The caller fills every field except ID and
	// CreatedAt, which the implementation assigns.
	Add(ctx context.Context, a *models.Activity) error

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}
