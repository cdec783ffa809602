package models

// Reference is a row of a read-only lookup table (categories, statuses).
type Reference struct {
	ID   int64
	Name string
}

type Category = Reference

type Status = Reference
