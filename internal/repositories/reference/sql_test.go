package reference

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, func(string) *SQLRepository) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, func(name string) *SQLRepository { return NewSQLRepository(db, dbx.MySQL, name) }
}

func TestList_TablesAreSeparate(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM categories ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Clothing").AddRow(int64(2), "Food").AddRow(int64(3), "Money"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM statuses ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Received"))

	cats, err := repo(CategoriesTable).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*models.Reference{{ID: 1, Name: "Clothing"}, {ID: 2, Name: "Food"}, {ID: 3, Name: "Money"}}, cats)

	statuses, err := repo(StatusesTable).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*models.Reference{{ID: 1, Name: "Received"}}, statuses)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByName(t *testing.T) {
	mock, repo := newMock(t)

	q := regexp.QuoteMeta(`SELECT id, name FROM statuses WHERE name = ? ORDER BY id`)
	mock.ExpectQuery(q).WithArgs("Received").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Received"))
	mock.ExpectQuery(q).WithArgs("Lost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	s, err := repo(StatusesTable).GetByName(context.Background(), "Received")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)

	_, err = repo(StatusesTable).GetByName(context.Background(), "Lost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
