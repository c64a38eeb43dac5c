package store

import (
	"errors"
	"strings"
	"time"

	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

type CreateSprintParams struct {
	ProjectID uint
	Name      string
	Goal      string
	StartDate *time.Time
	EndDate   *time.Time
	Status    models.SprintStatus
}

func (s *Store) CreateSprint(params CreateSprintParams) (*models.Sprint, error) {
	params.Name = strings.TrimSpace(params.Name)

	if params.Name == "" {
		return nil, &models.ValidationError{Field: "sprint_name", Reason: "must not be empty"}
	}
	if params.Status == "" {
		params.Status = models.SprintStatusFuture
	}
	if !params.Status.Valid() {
		return nil, &models.ValidationError{Field: "status", Reason: "unrecognized status " + string(params.Status)}
	}

	sprint := models.Sprint{
		ProjectID: params.ProjectID,
		Name:      params.Name,
		Goal:      params.Goal,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Status:    params.Status,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, sprint.ProjectID); err != nil {
			return err
		}
		return tx.Create(&sprint).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &sprint, nil
}

func requireProject(tx *gorm.DB, id uint) error {
	var project models.Project

	if err := tx.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	return nil
}

func (s *Store) GetSprint(id uint) (*models.Sprint, error) {
	var sprint models.Sprint

	if err := s.db.First(&sprint, id).Error; err != nil {
		return nil, translate(err)
	}

	return &sprint, nil
}

func (s *Store) ListSprintsByProject(projectID uint, skip, limit int) ([]models.Sprint, error) {
	var sprints []models.Sprint

	skip, limit = normalizeRange(skip, limit)

	err := s.db.Where("project_id = ?", projectID).
		Order("id").Offset(skip).Limit(limit).
		Find(&sprints).Error
	if err != nil {
		return nil, translate(err)
	}

	return sprints, nil
}

type SprintUpdate struct {
	Name      *string
	Goal      *string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *models.SprintStatus
}

func (s *Store) UpdateSprint(id uint, patch SprintUpdate) (*models.Sprint, error) {
	var sprint models.Sprint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := locked(tx).First(&sprint, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return &models.ValidationError{Field: "sprint_name", Reason: "must not be empty"}
			}
			updates["name"] = name
		}
		if patch.Goal != nil {
			updates["goal"] = *patch.Goal
		}
		if patch.StartDate != nil {
			updates["start_date"] = *patch.StartDate
		}
		if patch.EndDate != nil {
			updates["end_date"] = *patch.EndDate
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return &models.ValidationError{Field: "status", Reason: "unrecognized status " + string(*patch.Status)}
			}
			updates["status"] = *patch.Status
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&sprint).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &sprint, nil
}

// DeleteSprint detaches every issue still scheduled into the sprint
// (sprint reference set to none, issues survive), then removes the sprint.
func (s *Store) DeleteSprint(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sprint models.Sprint

		if err := locked(tx).First(&sprint, id).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Issue{}).
			Where("sprint_id = ?", id).
			UpdateColumn("sprint_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&sprint).Error
	})

	return translate(err)
}
