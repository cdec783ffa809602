// Package reference stores the read-only lookup tables: donation categories
// and donation statuses.
package reference

import (
	"context"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/crud"
)

const (
	CategoriesTable = "categories"
	StatusesTable   = "statuses"
)

func table(name string) crud.Table[models.Reference] {
	return crud.Table[models.Reference]{
		Name:    name,
		Columns: []string{"name"},
		Scan: func(s crud.Scanner) (*models.Reference, error) {
			r := &models.Reference{}
			if err := s.Scan(&r.ID, &r.Name); err != nil {
				return nil, err
			}
			return r, nil
		},
		Values: func(r *models.Reference) []any { return []any{r.Name} },
	}
}

type SQLRepository struct {
	engine *crud.Engine[models.Reference]
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect, tableName string) *SQLRepository {
	return &SQLRepository{engine: crud.New(db, dialect, table(tableName))}
}

func NewCategories(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return NewSQLRepository(db, dialect, CategoriesTable)
}

func NewStatuses(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return NewSQLRepository(db, dialect, StatusesTable)
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Reference, error) {
	return r.engine.List(ctx, nil)
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Reference, error) {
	return r.engine.Get(ctx, id)
}

func (r *SQLRepository) GetByName(ctx context.Context, name string) (*models.Reference, error) {
	found, err := r.engine.ListBy(ctx, "name", name)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}
