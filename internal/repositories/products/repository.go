package products

import (
	"context"

	"github.com/dmitrijs2005/solidarias/internal/models"
)

type Repository interface {
	Create(ctx context.Context, product *models.Product) (int64, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Search(ctx context.Context, name string) ([]*models.Product, error)
	Update(ctx context.Context, id int64, patch models.ProductPatch) error
	Delete(ctx context.Context, id int64) error
}
