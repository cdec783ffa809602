// Package users stores registered donors.
package users

import (
	"context"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/dmitrijs2005/solidarias/internal/repositories/crud"
)

var Table = crud.Table[models.User]{
	Name:    "users",
	Columns: []string{"username", "password", "email"},
	Scan: func(s crud.Scanner) (*models.User, error) {
		u := &models.User{}
		if err := s.Scan(&u.ID, &u.UserName, &u.PasswordHash, &u.Email); err != nil {
			return nil, err
		}
		return u, nil
	},
	Values: func(u *models.User) []any {
		return []any{u.UserName, u.PasswordHash, u.Email}
	},
}

type SQLRepository struct {
	engine *crud.Engine[models.User]
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{engine: crud.New(db, dialect, Table)}
}

// Create inserts user and fills in its id. A taken username or email
// surfaces as common.ErrorAlreadyExists.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id, err := r.engine.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.engine.Get(ctx, id)
}

func (r *SQLRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	return r.first(ctx, "username", userName)
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email", email)
}

func (r *SQLRepository) first(ctx context.Context, column, value string) (*models.User, error) {
	found, err := r.engine.ListBy(ctx, column, value)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}
