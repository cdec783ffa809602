package dbx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect describes how statements are written for one SQL engine and how its
// driver reports constraint violations.
type Dialect struct {
	// Name identifies the dialect and names its migrations directory.
	Name string
	// DriverName is the database/sql driver registered for the dialect.
	DriverName string
	// GooseDialect is passed to goose.SetDialect.
	GooseDialect string
	// Returning reports support for INSERT ... RETURNING.
	Returning bool

	numbered     bool
	isUnique     func(error) bool
	isForeignKey func(error) bool
	isData       func(error) bool
}

var (
	Postgres = Dialect{
		Name:         "postgres",
		DriverName:   "pgx",
		GooseDialect: "pgx",
		Returning:    true,
		numbered:     true,
		isUnique:     pgCode("23505"),
		isForeignKey: pgCode("23503"),
		isData:       pgCode("22001", "22003"),
	}

	MySQL = Dialect{
		Name:         "mysql",
		DriverName:   "mysql",
		GooseDialect: "mysql",
		isUnique:     mysqlNumber(1062),
		isForeignKey: mysqlNumber(1451, 1452),
		isData:       mysqlNumber(1264, 1406),
	}

	SQLite = Dialect{
		Name:         "sqlite",
		DriverName:   "sqlite",
		GooseDialect: "sqlite3",
		Returning:    true,
		isUnique:     sqliteCode(sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY),
		isForeignKey: sqliteCode(sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY),
	}
)

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Classify maps a driver error onto the project's error taxonomy. Unique
// violations become common.ErrorAlreadyExists, foreign key violations
// common.ErrorUnknownReference and values that do not fit their column
// common.ErrorValueTooLarge. Everything else is wrapped as a db error.
// SQLite does not enforce column sizes, so services check them up front.
func (d Dialect) Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case d.isUnique != nil && d.isUnique(err):
		return fmt.Errorf("%w: %v", common.ErrorAlreadyExists, err)
	case d.isForeignKey != nil && d.isForeignKey(err):
		return common.ErrorUnknownReference
	case d.isData != nil && d.isData(err):
		return common.ErrorValueTooLarge
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func pgCode(codes ...string) func(error) bool {
	return func(err error) bool {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			return false
		}
		for _, c := range codes {
			if pgErr.Code == c {
				return true
			}
		}
		return false
	}
}

func mysqlNumber(numbers ...uint16) func(error) bool {
	return func(err error) bool {
		var myErr *mysql.MySQLError
		if !errors.As(err, &myErr) {
			return false
		}
		for _, n := range numbers {
			if myErr.Number == n {
				return true
			}
		}
		return false
	}
}

func sqliteCode(codes ...int) func(error) bool {
	return func(err error) bool {
		var liteErr *sqlite.Error
		if !errors.As(err, &liteErr) {
			return false
		}
		for _, c := range codes {
			if liteErr.Code() == c {
				return true
			}
		}
		return false
	}
}
