// Package audit propagates modification timestamps from dependent
// entities to their owning issue. The touch is an explicit call made
// inside the same transaction as the triggering write, so a failed
// touch rolls the whole write back.
package audit

import (
	"time"

	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

// TouchIssue advances the issue's updated_date. Fired on comment,
// worklog, and attachment inserts, and on comment text edits.
func TouchIssue(tx *gorm.DB, issueID uint) error {
	result := tx.Model(&models.Issue{}).
		Where("id = ?", issueID).
		Update("updated_at", time.Now())

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}
