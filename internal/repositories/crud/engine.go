package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/dbx"
)

// Engine runs single-statement CRUD operations for one Table over a DBTX
// (*sql.DB or *sql.Tx).
type Engine[T any] struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	table   Table[T]
}

// New binds table to db using the statement syntax of dialect.
func New[T any](db dbx.DBTX, dialect dbx.Dialect, table Table[T]) *Engine[T] {
	return &Engine[T]{db: db, dialect: dialect, table: table}
}

// Dialect returns the dialect the engine writes statements for.
func (e *Engine[T]) Dialect() dbx.Dialect {
	return e.dialect
}

// Insert stores item and returns the generated id.
func (e *Engine[T]) Insert(ctx context.Context, item *T) (int64, error) {
	values := e.table.Values(item)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.table.Name, strings.Join(e.table.Columns, ", "), e.placeholders(1, len(values)))

	if e.dialect.Returning {
		var id int64
		err := e.db.QueryRowContext(ctx, query+" RETURNING id", values...).Scan(&id)
		if err != nil {
			return 0, e.dialect.Classify(err)
		}
		return id, nil
	}

	res, err := e.db.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, e.dialect.Classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id error: %w", err)
	}
	return id, nil
}

// Get returns the row with the given id or common.ErrorNotFound.
func (e *Engine[T]) Get(ctx context.Context, id int64) (*T, error) {
	query := e.selectQuery() + " WHERE id = " + e.dialect.Placeholder(1)

	item, err := e.table.Scan(e.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, e.dialect.Classify(err)
	}
	return item, nil
}

// List returns all rows ordered by id, optionally narrowed by a substring filter.
func (e *Engine[T]) List(ctx context.Context, filter *Filter) ([]*T, error) {
	query := e.selectQuery()
	var args []any

	if filter != nil {
		if !e.table.hasColumn(filter.Column) {
			return nil, fmt.Errorf("%w: unknown column %q", common.ErrorValidation, filter.Column)
		}
		query += fmt.Sprintf(" WHERE LOWER(%s) LIKE LOWER(%s) ESCAPE '!'", filter.Column, e.dialect.Placeholder(1))
		args = append(args, ContainsPattern(filter.Contains))
	}

	return e.query(ctx, query+" ORDER BY id", args...)
}

// ListBy returns the rows whose column equals value, ordered by id.
func (e *Engine[T]) ListBy(ctx context.Context, column string, value any) ([]*T, error) {
	if !e.table.hasColumn(column) {
		return nil, fmt.Errorf("%w: unknown column %q", common.ErrorValidation, column)
	}
	query := fmt.Sprintf("%s WHERE %s = %s ORDER BY id", e.selectQuery(), column, e.dialect.Placeholder(1))
	return e.query(ctx, query, value)
}

// Update applies the assignments to the row with the given id. Columns not
// mentioned keep their values. An empty assignment list only checks that the
// row exists. Returns common.ErrorNotFound when no row has that id.
func (e *Engine[T]) Update(ctx context.Context, id int64, set []Assignment) error {
	if len(set) == 0 {
		_, err := e.Get(ctx, id)
		return err
	}

	parts := make([]string, 0, len(set))
	args := make([]any, 0, len(set)+1)
	for i, a := range set {
		if !e.table.hasColumn(a.Column) {
			return fmt.Errorf("%w: unknown column %q", common.ErrorValidation, a.Column)
		}
		parts = append(parts, a.Column+" = "+e.dialect.Placeholder(i+1))
		args = append(args, a.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		e.table.Name, strings.Join(parts, ", "), e.dialect.Placeholder(len(args)))

	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return e.dialect.Classify(err)
	}
	return expectOneRow(res)
}

// Delete removes the row with the given id or returns common.ErrorNotFound.
func (e *Engine[T]) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", e.table.Name, e.dialect.Placeholder(1))

	res, err := e.db.ExecContext(ctx, query, id)
	if err != nil {
		return e.dialect.Classify(err)
	}
	return expectOneRow(res)
}

func (e *Engine[T]) query(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, e.dialect.Classify(err)
	}
	defer rows.Close()

	result := make([]*T, 0)
	for rows.Next() {
		item, err := e.table.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, e.dialect.Classify(err)
	}
	return result, nil
}

func (e *Engine[T]) selectQuery() string {
	return fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(e.table.Columns, ", "), e.table.Name)
}

func (e *Engine[T]) placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = e.dialect.Placeholder(from + i)
	}
	return strings.Join(ph, ", ")
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern returns a LIKE pattern matching any value containing s.
// Wildcards in s are escaped with '!', so statements must declare ESCAPE '!'.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
