package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/donations"
	"github.com/dmitrijs2005/solidarias/internal/repositories/repomanager"
)

// NewDonation is the creation form. Quantity and Value fall back to
// models.DefaultDonationQuantity and models.DefaultDonationValue, StatusID to
// the status named common.DefaultStatusName.
type NewDonation struct {
	Description string
	Quantity    models.Optional[int]
	Value       models.Optional[float64]
	CategoryID  int64
	StatusID    models.Optional[int64]
}

// DonationService manages donations and enforces that only the owner may
// change or delete one.
type DonationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDonationService(db *sql.DB, m repomanager.RepositoryManager) *DonationService {
	return &DonationService{db: db, repomanager: m}
}

// Create stores a donation owned by userID. A zero userID means no session
// and yields common.ErrorUnauthorized. Unknown category or status ids yield
// common.ErrorValidation.
func (s *DonationService) Create(ctx context.Context, userID int64, in NewDonation) (*models.Donation, error) {
	if userID == 0 {
		return nil, common.ErrorUnauthorized
	}

	d := &models.Donation{
		Description: strings.TrimSpace(in.Description),
		Quantity:    models.DefaultDonationQuantity,
		Value:       models.DefaultDonationValue,
		CategoryID:  in.CategoryID,
		UserID:      userID,
	}
	if d.Description == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if err := checkLen("description", d.Description, models.MaxDescriptionLen); err != nil {
		return nil, err
	}
	if v, ok := in.Quantity.Get(); ok {
		if err := checkQuantity(v); err != nil {
			return nil, err
		}
		d.Quantity = v
	}
	if v, ok := in.Value.Get(); ok {
		d.Value = v
	}

	if v, ok := in.StatusID.Get(); ok {
		d.StatusID = v
	} else {
		status, err := s.repomanager.Statuses(s.db).GetByName(ctx, common.DefaultStatusName)
		if err != nil {
			return nil, fmt.Errorf("default status: %w", err)
		}
		d.StatusID = status.ID
	}

	if _, err := s.repomanager.Donations(s.db).Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DonationService) Get(ctx context.Context, id int64) (*models.Donation, error) {
	return s.repomanager.Donations(s.db).Get(ctx, id)
}

// List returns all donations with category, status and donor names,
// optionally narrowed to descriptions containing query.
func (s *DonationService) List(ctx context.Context, query string) ([]*models.DonationView, error) {
	return s.repomanager.Donations(s.db).ListDetailed(ctx, donations.DetailFilter{Query: strings.TrimSpace(query)})
}

// ListByUser is List narrowed to the donations owned by userID. A zero
// userID yields common.ErrorUnauthorized.
func (s *DonationService) ListByUser(ctx context.Context, userID int64, query string) ([]*models.DonationView, error) {
	if userID == 0 {
		return nil, common.ErrorUnauthorized
	}
	return s.repomanager.Donations(s.db).ListDetailed(ctx, donations.DetailFilter{
		Query:  strings.TrimSpace(query),
		UserID: userID,
	})
}

// GetOwned returns the donation if userID owns it. It is what edit forms
// are filled from.
func (s *DonationService) GetOwned(ctx context.Context, userID, id int64) (*models.Donation, error) {
	if userID == 0 {
		return nil, common.ErrorUnauthorized
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return d, nil
}

// Update applies patch to the donation if userID owns it. The ownership
// check and the write share one transaction.
func (s *DonationService) Update(ctx context.Context, userID, id int64, patch models.DonationPatch) error {
	if userID == 0 {
		return common.ErrorUnauthorized
	}
	if v, ok := patch.Description.Get(); ok {
		v = strings.TrimSpace(v)
		if v == "" {
			return fmt.Errorf("%w: description is required", common.ErrorValidation)
		}
		if err := checkLen("description", v, models.MaxDescriptionLen); err != nil {
			return err
		}
		patch.Description = models.Some(v)
	}
	if v, ok := patch.Quantity.Get(); ok {
		if err := checkQuantity(v); err != nil {
			return err
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Donations(tx)
		if err := checkOwner(ctx, repo.Get, userID, id); err != nil {
			return err
		}
		return repo.Update(ctx, id, patch)
	})
}

// Delete removes the donation if userID owns it.
func (s *DonationService) Delete(ctx context.Context, userID, id int64) error {
	if userID == 0 {
		return common.ErrorUnauthorized
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Donations(tx)
		if err := checkOwner(ctx, repo.Get, userID, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func checkOwner(ctx context.Context, get func(context.Context, int64) (*models.Donation, error), userID, id int64) error {
	d, err := get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error loading donation: %w", err)
	}
	if d.UserID != userID {
		return common.ErrorForbidden
	}
	return nil
}
