package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

// Postgres error codes (github.com/lib/pq).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
)

// MySQL error numbers (github.com/go-sql-driver/mysql).
const (
	myDuplicateEntry    = 1062
	myForeignKeyFails   = 1452
	myDeadlock          = 1213
	myLockWaitTimeout   = 1205
	myConnectionRefused = 2003
)

// uniqueField recovers the attribute name from a database-side
// constraint identifier (an index name on postgres, the "Duplicate
// entry ... for key ..." message on mysql), so the backstop path
// reports the same Field the pre-checks do.
func uniqueField(hint, fallback string) string {
	switch {
	case strings.Contains(hint, "username"):
		return "username"
	case strings.Contains(hint, "email"):
		return "email"
	case strings.Contains(hint, "projects_key"):
		return "project_key"
	case strings.Contains(hint, "file_path"):
		return "file_path"
	}
	return fallback
}

// TranslateError maps driver-level failures onto the domain error
// taxonomy. The store applies it on every operation; the aggregation
// layer, which queries the database directly, uses it on its reads.
func TranslateError(err error) error {
	return translate(err)
}

// translate maps driver-level failures onto the domain error taxonomy.
// Uniqueness is pre-checked inside each transaction, so the constraint
// branches here are the backstop for races the pre-check cannot see.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return &models.UniquenessError{Field: uniqueField(pqErr.Constraint, pqErr.Constraint)}
		case pgForeignKeyViolation:
			return models.ErrNotFound
		case pgSerializationFail, pgDeadlockDetected:
			return models.ErrConflict
		}
		if pqErr.Code.Class() == "08" { // connection exceptions
			return fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case myDuplicateEntry:
			return &models.UniquenessError{Field: uniqueField(myErr.Message, "unique constraint")}
		case myForeignKeyFails:
			return models.ErrNotFound
		case myDeadlock, myLockWaitTimeout:
			return models.ErrConflict
		case myConnectionRefused:
			return fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return err
}
