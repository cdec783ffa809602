// Package crud implements the generalized create/read/update/delete engine
// shared by every entity repository. An Engine is parameterized by a Table
// describing the entity: its table name, a fixed column list and the
// functions mapping rows to values. Statements are only ever built from that
// static column list; caller-supplied column names are checked against it
// before any SQL is produced.
package crud

import "slices"

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describes how an entity of type T is stored. The identity column is
// always "id" and is not part of Columns.
type Table[T any] struct {
	Name string
	// Columns lists the writable columns in the order Values returns them.
	Columns []string
	// Scan reads "id" followed by Columns, in that order.
	Scan func(s Scanner) (*T, error)
	// Values returns the column values of item, in Columns order.
	Values func(item *T) []any
}

func (t Table[T]) hasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Assignment sets one column in an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Filter restricts List to rows whose Column contains the substring Contains,
// compared case-insensitively.
type Filter struct {
	Column   string
	Contains string
}
