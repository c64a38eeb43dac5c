package store

import (
	"math"
	"time"

	"github.com/taskline-dev/taskline/internal/audit"
	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

// roundHours keeps hours to the two decimal places the column stores.
func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

type CreateWorklogParams struct {
	IssueID     uint
	LoggerID    *uint
	Hours       float64
	WorkDate    time.Time
	Description string
}

// CreateWorklog records time against an issue and advances the issue's
// updated_date in the same transaction.
func (s *Store) CreateWorklog(params CreateWorklogParams) (*models.Worklog, error) {
	if params.Hours <= 0 {
		return nil, &models.ValidationError{Field: "hours_logged", Reason: "must be positive"}
	}
	if params.WorkDate.IsZero() {
		return nil, &models.ValidationError{Field: "work_date", Reason: "must be set"}
	}

	worklog := models.Worklog{
		IssueID:     params.IssueID,
		LoggerID:    params.LoggerID,
		Hours:       roundHours(params.Hours),
		WorkDate:    params.WorkDate,
		Description: params.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireIssue(tx, worklog.IssueID); err != nil {
			return err
		}
		if worklog.LoggerID != nil {
			if err := requireUser(tx, *worklog.LoggerID); err != nil {
				return err
			}
		}
		if err := tx.Create(&worklog).Error; err != nil {
			return err
		}
		return audit.TouchIssue(tx, worklog.IssueID)
	})
	if err != nil {
		return nil, translate(err)
	}

	return &worklog, nil
}

func (s *Store) GetWorklog(id uint) (*models.Worklog, error) {
	var worklog models.Worklog

	if err := s.db.First(&worklog, id).Error; err != nil {
		return nil, translate(err)
	}

	return &worklog, nil
}

func (s *Store) ListWorklogsByIssue(issueID uint, skip, limit int) ([]models.Worklog, error) {
	var worklogs []models.Worklog

	skip, limit = normalizeRange(skip, limit)

	err := s.db.Where("issue_id = ?", issueID).
		Order("work_date DESC, created_at DESC").Offset(skip).Limit(limit).
		Find(&worklogs).Error
	if err != nil {
		return nil, translate(err)
	}

	return worklogs, nil
}

type WorklogUpdate struct {
	Hours       *float64
	WorkDate    *time.Time
	Description *string
}

// UpdateWorklog edits an existing entry. Worklog edits do not move the
// issue's updated_date; only inserts do.
func (s *Store) UpdateWorklog(id uint, patch WorklogUpdate) (*models.Worklog, error) {
	var worklog models.Worklog

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := locked(tx).First(&worklog, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if patch.Hours != nil {
			if *patch.Hours <= 0 {
				return &models.ValidationError{Field: "hours_logged", Reason: "must be positive"}
			}
			updates["hours_logged"] = roundHours(*patch.Hours)
		}
		if patch.WorkDate != nil {
			updates["work_date"] = *patch.WorkDate
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&worklog).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &worklog, nil
}

func (s *Store) DeleteWorklog(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var worklog models.Worklog

		if err := locked(tx).First(&worklog, id).Error; err != nil {
			return err
		}

		return tx.Delete(&worklog).Error
	})

	return translate(err)
}
