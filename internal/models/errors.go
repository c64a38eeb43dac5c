package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the store, workflow, and aggregation layers.
// Every constraint violation aborts the enclosing transaction; nothing is
// corrected silently.
var (
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a write-write race was detected on the same row.
	// The whole operation is safe to retry once.
	ErrConflict = errors.New("concurrent modification detected")

	// ErrStorage means the underlying persistence is unreachable.
	ErrStorage = errors.New("storage unavailable")
)

// UniquenessError reports a duplicate value for a unique attribute
// (username, email, project key, attachment path).
type UniquenessError struct {
	Field string
	Value string
}

func (e *UniquenessError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("duplicate value for %s", e.Field)
	}
	return fmt.Sprintf("duplicate %s %q", e.Field, e.Value)
}

// CrossProjectError reports an attempt to relate an issue to a sprint or
// parent issue that belongs to a different project.
type CrossProjectError struct {
	Relation       string // "sprint" or "parent issue"
	IssueProjectID uint
	OtherProjectID uint
}

func (e *CrossProjectError) Error() string {
	return fmt.Sprintf("%s belongs to project %d, issue belongs to project %d",
		e.Relation, e.OtherProjectID, e.IssueProjectID)
}

// ValidationError reports a malformed field value, such as non-positive
// worklog hours or an unrecognized enum value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
