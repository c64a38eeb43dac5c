// Package store is the typed persistence layer for the tracker's entity
// graph. It owns uniqueness and foreign-key checks, the cascade/nullify
// rules applied on delete, and runs every multi-step mutation inside a
// single transaction.
package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 100

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// locked adds SELECT ... FOR UPDATE so that validate-then-write sequences
// serialize at the row level. SQLite has no row locks (writers serialize
// on the database file), so the clause is skipped there.
func locked(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func normalizeRange(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return skip, limit
}
