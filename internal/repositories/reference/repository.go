package reference

import (
	"context"

	"github.com/dmitrijs2005/solidarias/internal/models"
)

// Repository reads a lookup table. Lookup rows are seeded by migrations and
// never written by the application.
type Repository interface {
	List(ctx context.Context) ([]*models.Reference, error)
	GetByID(ctx context.Context, id int64) (*models.Reference, error)
	GetByName(ctx context.Context, name string) (*models.Reference, error)
}
