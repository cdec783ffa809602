// Package donations stores donation records owned by users.
package donations

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/crud"
)

var Table = crud.Table[models.Donation]{
	Name:    "donations",
	Columns: []string{"description", "quantity", "value", "category_id", "status_id", "user_id"},
	Scan: func(s crud.Scanner) (*models.Donation, error) {
		d := &models.Donation{}
		if err := s.Scan(&d.ID, &d.Description, &d.Quantity, &d.Value, &d.CategoryID, &d.StatusID, &d.UserID); err != nil {
			return nil, err
		}
		return d, nil
	},
	Values: func(d *models.Donation) []any {
		return []any{d.Description, d.Quantity, d.Value, d.CategoryID, d.StatusID, d.UserID}
	},
}

const detailedQuery = `SELECT d.id, d.description, d.quantity, d.value, d.category_id, d.status_id, d.user_id,
       c.name, s.name, u.username
  FROM donations d
  JOIN categories c ON c.id = d.category_id
  JOIN statuses s ON s.id = d.status_id
  JOIN users u ON u.id = d.user_id`

type SQLRepository struct {
	db     dbx.DBTX
	engine *crud.Engine[models.Donation]
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, engine: crud.New(db, dialect, Table)}
}

// Create inserts d and sets its id. A missing category, status or user
// surfaces as common.ErrorValidation.
func (r *SQLRepository) Create(ctx context.Context, d *models.Donation) (int64, error) {
	id, err := r.engine.Insert(ctx, d)
	if err != nil {
		return 0, err
	}
	d.ID = id
	return id, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Donation, error) {
	return r.engine.Get(ctx, id)
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Donation, error) {
	return r.engine.List(ctx, nil)
}

func (r *SQLRepository) ListDetailed(ctx context.Context, f DetailFilter) ([]*models.DonationView, error) {
	dialect := r.engine.Dialect()

	var where []string
	var args []any
	if f.Query != "" {
		args = append(args, crud.ContainsPattern(f.Query))
		where = append(where, fmt.Sprintf("LOWER(d.description) LIKE LOWER(%s) ESCAPE '!'", dialect.Placeholder(len(args))))
	}
	if f.UserID != 0 {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("d.user_id = %s", dialect.Placeholder(len(args))))
	}

	stmt := detailedQuery
	if len(where) > 0 {
		stmt += "\n WHERE " + strings.Join(where, " AND ")
	}
	stmt += "\n ORDER BY d.id"

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, dialect.Classify(err)
	}
	defer rows.Close()

	result := make([]*models.DonationView, 0)
	for rows.Next() {
		v := &models.DonationView{}
		if err := rows.Scan(&v.ID, &v.Description, &v.Quantity, &v.Value, &v.CategoryID, &v.StatusID, &v.UserID,
			&v.CategoryName, &v.StatusName, &v.DonorName); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, dialect.Classify(err)
	}
	return result, nil
}

// Update applies the present patch fields. An empty patch only checks that
// the donation exists.
func (r *SQLRepository) Update(ctx context.Context, id int64, patch models.DonationPatch) error {
	var set []crud.Assignment
	if v, ok := patch.Description.Get(); ok {
		set = append(set, crud.Assignment{Column: "description", Value: v})
	}
	if v, ok := patch.Quantity.Get(); ok {
		set = append(set, crud.Assignment{Column: "quantity", Value: v})
	}
	if v, ok := patch.Value.Get(); ok {
		set = append(set, crud.Assignment{Column: "value", Value: v})
	}
	if v, ok := patch.CategoryID.Get(); ok {
		set = append(set, crud.Assignment{Column: "category_id", Value: v})
	}
	return r.engine.Update(ctx, id, set)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	return r.engine.Delete(ctx, id)
}
