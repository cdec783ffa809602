package crud

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gadget struct {
	ID    int64
	Name  string
	Count int
	Price float64
}

var gadgets = Table[gadget]{
	Name:    "gadgets",
	Columns: []string{"name", "count", "price"},
	Scan: func(s Scanner) (*gadget, error) {
		g := &gadget{}
		if err := s.Scan(&g.ID, &g.Name, &g.Count, &g.Price); err != nil {
			return nil, err
		}
		return g, nil
	},
	Values: func(g *gadget) []any { return []any{g.Name, g.Count, g.Price} },
}

func newSQLiteEngine(t *testing.T) (*Engine[gadget], *sql.DB) {
	t.Helper()
	db, dialect, err := dbx.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE gadgets (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  count INTEGER NOT NULL,
  price REAL NOT NULL
)`)
	require.NoError(t, err)

	return New(db, dialect, gadgets), db
}

func TestEngine_InsertGet(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	id, err := e.Insert(ctx, &gadget{Name: "Rice", Count: 10, Price: 2.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := e.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &gadget{ID: 1, Name: "Rice", Count: 10, Price: 2.5}, got)
}

func TestEngine_GetNotFound(t *testing.T) {
	e, _ := newSQLiteEngine(t)

	_, err := e.Get(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEngine_InsertDuplicate(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	_, err := e.Insert(ctx, &gadget{Name: "Rice"})
	require.NoError(t, err)

	_, err = e.Insert(ctx, &gadget{Name: "Rice"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	all, err := e.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1, "a rejected insert must not leave a row behind")
}

func TestEngine_UpdateSparse(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	id, err := e.Insert(ctx, &gadget{Name: "Rice", Count: 10, Price: 2.5})
	require.NoError(t, err)

	require.NoError(t, e.Update(ctx, id, []Assignment{{Column: "count", Value: 7}}))

	got, err := e.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &gadget{ID: id, Name: "Rice", Count: 7, Price: 2.5}, got)
}

func TestEngine_UpdateSameValuesIsNotNotFound(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	id, err := e.Insert(ctx, &gadget{Name: "Rice", Count: 10, Price: 2.5})
	require.NoError(t, err)

	assert.NoError(t, e.Update(ctx, id, []Assignment{{Column: "count", Value: 10}}))
}

func TestEngine_UpdateErrors(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	id, err := e.Insert(ctx, &gadget{Name: "Rice", Count: 10, Price: 2.5})
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, e.Update(ctx, 404, []Assignment{{Column: "count", Value: 1}}), common.ErrorNotFound)
	})

	t.Run("empty assignments on unknown id", func(t *testing.T) {
		assert.ErrorIs(t, e.Update(ctx, 404, nil), common.ErrorNotFound)
	})

	t.Run("empty assignments on existing id", func(t *testing.T) {
		assert.NoError(t, e.Update(ctx, id, nil))
	})

	t.Run("column outside the table definition", func(t *testing.T) {
		err := e.Update(ctx, id, []Assignment{{Column: "name = 'x', count", Value: 1}})
		assert.ErrorIs(t, err, common.ErrorValidation)

		got, err := e.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Rice", got.Name)
	})
}

func TestEngine_Delete(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	keep, err := e.Insert(ctx, &gadget{Name: "Beans", Count: 1, Price: 1})
	require.NoError(t, err)
	drop, err := e.Insert(ctx, &gadget{Name: "Rice", Count: 1, Price: 1})
	require.NoError(t, err)

	require.NoError(t, e.Delete(ctx, drop))
	assert.ErrorIs(t, e.Delete(ctx, drop), common.ErrorNotFound)
	assert.ErrorIs(t, e.Delete(ctx, 12345), common.ErrorNotFound)

	_, err = e.Get(ctx, keep)
	assert.NoError(t, err, "deleting other ids must not touch this row")
}

func TestEngine_ListFilterAndOrder(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	for _, n := range []string{"Brown rice", "Beans", "RICE flour", "100%_juice"} {
		_, err := e.Insert(ctx, &gadget{Name: n})
		require.NoError(t, err)
	}

	all, err := e.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, g := range all {
		assert.Equal(t, int64(i+1), g.ID, "rows must come back in insertion order")
	}

	rice, err := e.List(ctx, &Filter{Column: "name", Contains: "rice"})
	require.NoError(t, err)
	require.Len(t, rice, 2)
	assert.Equal(t, "Brown rice", rice[0].Name)
	assert.Equal(t, "RICE flour", rice[1].Name)

	literal, err := e.List(ctx, &Filter{Column: "name", Contains: "%_"})
	require.NoError(t, err)
	require.Len(t, literal, 1, "wildcards in the search text are literal")
	assert.Equal(t, "100%_juice", literal[0].Name)

	none, err := e.List(ctx, &Filter{Column: "name", Contains: "xyz"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = e.List(ctx, &Filter{Column: "1=1 OR name"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestEngine_ListBy(t *testing.T) {
	e, _ := newSQLiteEngine(t)
	ctx := context.Background()

	for _, g := range []gadget{{Name: "a", Count: 1}, {Name: "b", Count: 2}, {Name: "c", Count: 1}} {
		_, err := e.Insert(ctx, &g)
		require.NoError(t, err)
	}

	ones, err := e.ListBy(ctx, "count", 1)
	require.NoError(t, err)
	require.Len(t, ones, 2)
	assert.Equal(t, "a", ones[0].Name)
	assert.Equal(t, "c", ones[1].Name)

	_, err = e.ListBy(ctx, "owner", 1)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func newMockEngine(t *testing.T, dialect dbx.Dialect) (*Engine[gadget], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, dialect, gadgets), mock
}

func TestEngine_PostgresStatements(t *testing.T) {
	e, mock := newMockEngine(t, dbx.Postgres)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO gadgets (name, count, price) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("Rice", 10, 2.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE gadgets SET count = $1, price = $2 WHERE id = $3`)).
		WithArgs(7, 3.0, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, count, price FROM gadgets WHERE LOWER(name) LIKE LOWER($1) ESCAPE '!' ORDER BY id`)).
		WithArgs("%ri!%ce%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count", "price"}))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM gadgets WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	id, err := e.Insert(ctx, &gadget{Name: "Rice", Count: 10, Price: 2.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.NoError(t, e.Update(ctx, 1, []Assignment{{"count", 7}, {"price", 3.0}}))

	res, err := e.List(ctx, &Filter{Column: "name", Contains: "ri%ce"})
	require.NoError(t, err)
	assert.Empty(t, res)

	assert.ErrorIs(t, e.Delete(ctx, 1), common.ErrorNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEngine_MySQLUsesLastInsertID(t *testing.T) {
	e, mock := newMockEngine(t, dbx.MySQL)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO gadgets (name, count, price) VALUES (?, ?, ?)`)).
		WithArgs("Rice", 10, 2.5).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := e.Insert(context.Background(), &gadget{Name: "Rice", Count: 10, Price: 2.5})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEngine_DBErrorsAreWrapped(t *testing.T) {
	e, mock := newMockEngine(t, dbx.Postgres)

	mock.ExpectQuery(`SELECT id, name, count, price FROM gadgets ORDER BY id`).
		WillReturnError(errors.New("db down"))

	_, err := e.List(context.Background(), nil)
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}
