package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/repositories/donations"
	"github.com/dmitrijs2005/solidarias/internal/repositories/products"
	"github.com/dmitrijs2005/solidarias/internal/repositories/reference"
	"github.com/dmitrijs2005/solidarias/internal/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Categories(db dbx.DBTX) reference.Repository
	Statuses(db dbx.DBTX) reference.Repository
	Donations(db dbx.DBTX) donations.Repository
	Products(db dbx.DBTX) products.Repository
}
