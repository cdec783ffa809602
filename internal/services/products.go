package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/repomanager"
)

// ProductService manages the inventory. Products have no owner; both the web
// server and the CLI use it.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// Create validates and stores p, setting p.ID.
func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", common.ErrorValidation)
	}
	if err := checkProductName(p.Name); err != nil {
		return nil, err
	}
	if err := checkQuantity(p.Quantity); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Products(s.db).Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repomanager.Products(s.db).Get(ctx, id)
}

// List returns every product in insertion order.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx)
}

// Search returns the products whose name contains query, ignoring case. An
// empty query lists everything.
func (s *ProductService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	return s.repomanager.Products(s.db).Search(ctx, query)
}

// Update applies the present fields of patch and returns the stored product.
func (s *ProductService) Update(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	if name, ok := patch.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: product name is required", common.ErrorValidation)
		}
		if err := checkProductName(name); err != nil {
			return nil, err
		}
		patch.Name = models.Some(name)
	}
	if q, ok := patch.Quantity.Get(); ok {
		if err := checkQuantity(q); err != nil {
			return nil, err
		}
	}

	repo := s.repomanager.Products(s.db)
	if err := repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Products(s.db).Delete(ctx, id)
}

// checkProductName keeps names within the column and free of the tabs and
// line breaks that delimit the txt export.
func checkProductName(name string) error {
	if strings.ContainsAny(name, "\t\r\n") {
		return fmt.Errorf("%w: product name must not contain tabs or line breaks", common.ErrorValidation)
	}
	return checkLen("product name", name, models.MaxProductNameLen)
}
