package donations

import (
	"context"

	"github.com/dmitrijs2005/solidarias/internal/models"
)

// DetailFilter narrows ListDetailed. Zero fields match everything.
type DetailFilter struct {
	// Query matches descriptions containing it, ignoring case.
	Query string
	// UserID keeps only the donations of one donor.
	UserID int64
}

type Repository interface {
	Create(ctx context.Context, d *models.Donation) (int64, error)
	Get(ctx context.Context, id int64) (*models.Donation, error)
	List(ctx context.Context) ([]*models.Donation, error)
	// ListDetailed returns the donations matching f with their category,
	// status and donor names.
	ListDetailed(ctx context.Context, f DetailFilter) ([]*models.DonationView, error)
	Update(ctx context.Context, id int64, patch models.DonationPatch) error
	Delete(ctx context.Context, id int64) error
}
