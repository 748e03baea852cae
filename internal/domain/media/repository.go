package media

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// MediaRepository defines the interface for media metadata persistence
type MediaRepository interface {
	// FindByID finds a media record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Media, error)

	// FindAll finds media records matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Media, error)

	// Count counts media records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a media record
	Save(ctx context.Context, media *Media) error

	// Delete deletes a media record
	Delete(ctx context.Context, id uuid.UUID) error
}
