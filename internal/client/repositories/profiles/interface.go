package profiles

import (
	"context"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

// Repository persists the cached partner profile.
type Repository interface {
	// Upsert inserts p or replaces the row with the same id wholesale.
	Upsert(ctx context.Context, p *models.PartnerProfile) error

	// Update overwrites the row with p.ID. A missing row is left missing.
	Update(ctx context.Context, p *models.PartnerProfile) error

	// GetByID returns (nil, nil) when no row has the id.
	GetByID(ctx context.Context, id int64) (*models.PartnerProfile, error)

	// GetLoggedIn returns the one cached row, or (nil, nil) when empty.
	GetLoggedIn(ctx context.Context) (*models.PartnerProfile, error)

	// Clear deletes every row.
	Clear(ctx context.Context) error
}
