// Package repomanager provides a RepositoryManager for any supported SQL
// dialect, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/migrations"
	"github.com/dmitrijs2005/solidarias/internal/repositories/donations"
	"github.com/dmitrijs2005/solidarias/internal/repositories/products"
	"github.com/dmitrijs2005/solidarias/internal/repositories/reference"
	"github.com/dmitrijs2005/solidarias/internal/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends repository implementations for one dialect and
// exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Categories returns the donation category lookup bound to the provided DBTX.
func (m *SQLRepositoryManager) Categories(db dbx.DBTX) reference.Repository {
	return reference.NewCategories(db, m.dialect)
}

// Statuses returns the donation status lookup bound to the provided DBTX.
func (m *SQLRepositoryManager) Statuses(db dbx.DBTX) reference.Repository {
	return reference.NewStatuses(db, m.dialect)
}

// Donations returns a donations.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Donations(db dbx.DBTX) donations.Repository {
	return donations.NewSQLRepository(db, m.dialect)
}

// Products returns a products.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Products(db dbx.DBTX) products.Repository {
	return products.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and applies the pending ones. Applying twice is a no-op.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.Name); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) RepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}
