// Package products stores inventory products.
package products

import (
	"context"

	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/crud"
)

// Table maps models.Product onto the products table.
var Table = crud.Table[models.Product]{
	Name:    "products",
	Columns: []string{"name", "quantity", "price"},
	Scan: func(s crud.Scanner) (*models.Product, error) {
		p := &models.Product{}
		if err := s.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price); err != nil {
			return nil, err
		}
		return p, nil
	},
	Values: func(p *models.Product) []any {
		return []any{p.Name, p.Quantity, p.Price}
	},
}

type SQLRepository struct {
	engine *crud.Engine[models.Product]
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{engine: crud.New(db, dialect, Table)}
}

func (r *SQLRepository) Create(ctx context.Context, product *models.Product) (int64, error) {
	id, err := r.engine.Insert(ctx, product)
	if err != nil {
		return 0, err
	}
	product.ID = id
	return id, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	return r.engine.Get(ctx, id)
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Product, error) {
	return r.engine.List(ctx, nil)
}

func (r *SQLRepository) Search(ctx context.Context, name string) ([]*models.Product, error) {
	return r.engine.List(ctx, &crud.Filter{Column: "name", Contains: name})
}

// Update writes only the fields present in patch.
func (r *SQLRepository) Update(ctx context.Context, id int64, patch models.ProductPatch) error {
	var set []crud.Assignment
	if v, ok := patch.Name.Get(); ok {
		set = append(set, crud.Assignment{Column: "name", Value: v})
	}
	if v, ok := patch.Quantity.Get(); ok {
		set = append(set, crud.Assignment{Column: "quantity", Value: v})
	}
	if v, ok := patch.Price.Get(); ok {
		set = append(set, crud.Assignment{Column: "price", Value: v})
	}
	return r.engine.Update(ctx, id, set)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	return r.engine.Delete(ctx, id)
}
