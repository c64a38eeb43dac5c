// Package consistency enforces the cross-entity rules that must hold
// before any issue write commits. Callers run these checks inside the
// same transaction as the write; the first violation wins.
package consistency

import (
	"errors"
	"fmt"

	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

// ValidateSprint checks that a sprint about to be linked to an issue
// exists and belongs to the issue's project. A nil sprintID (unassigning)
// is always valid.
func ValidateSprint(tx *gorm.DB, projectID uint, sprintID *uint) error {
	if sprintID == nil {
		return nil
	}

	var sprint models.Sprint

	if err := tx.First(&sprint, *sprintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("sprint %d: %w", *sprintID, models.ErrNotFound)
		}
		return err
	}

	if sprint.ProjectID != projectID {
		return &models.CrossProjectError{
			Relation:       "sprint",
			IssueProjectID: projectID,
			OtherProjectID: sprint.ProjectID,
		}
	}

	return nil
}

// ValidateParent checks that a parent issue about to be linked exists and
// belongs to the same project. The parent chain itself is not checked for
// cycles.
func ValidateParent(tx *gorm.DB, projectID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}

	var parent models.Issue

	if err := tx.First(&parent, *parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("parent issue %d: %w", *parentID, models.ErrNotFound)
		}
		return err
	}

	if parent.ProjectID != projectID {
		return &models.CrossProjectError{
			Relation:       "parent issue",
			IssueProjectID: projectID,
			OtherProjectID: parent.ProjectID,
		}
	}

	return nil
}

// ValidateIssueLinks runs the sprint rule, then the parent rule, against
// the given project. Used on issue create, and again on update whenever
// sprint, parent, or the project itself changes.
func ValidateIssueLinks(tx *gorm.DB, projectID uint, sprintID, parentID *uint) error {
	if err := ValidateSprint(tx, projectID, sprintID); err != nil {
		return err
	}
	return ValidateParent(tx, projectID, parentID)
}
