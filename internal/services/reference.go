package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/repomanager"
)

// ReferenceService reads the seeded lookup tables used by donation forms.
type ReferenceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewReferenceService(db *sql.DB, m repomanager.RepositoryManager) *ReferenceService {
	return &ReferenceService{db: db, repomanager: m}
}

func (s *ReferenceService) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx)
}

func (s *ReferenceService) Statuses(ctx context.Context) ([]*models.Status, error) {
	return s.repomanager.Statuses(s.db).List(ctx)
}
