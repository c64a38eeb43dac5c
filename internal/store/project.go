package store

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

// Project keys are short uppercase alphanumeric identifiers, e.g. "DEMO".
var projectKeyPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

type CreateProjectParams struct {
	Key         string
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      models.ProjectStatus
	OwnerID     *uint
}

func (s *Store) CreateProject(params CreateProjectParams) (*models.Project, error) {
	params.Key = strings.TrimSpace(params.Key)
	params.Name = strings.TrimSpace(params.Name)

	if !projectKeyPattern.MatchString(params.Key) {
		return nil, &models.ValidationError{Field: "project_key", Reason: "must be 1-10 uppercase letters or digits"}
	}
	if params.Name == "" {
		return nil, &models.ValidationError{Field: "project_name", Reason: "must not be empty"}
	}
	if params.Status == "" {
		params.Status = models.ProjectStatusPlanning
	}
	if !params.Status.Valid() {
		return nil, &models.ValidationError{Field: "status", Reason: "unrecognized status " + string(params.Status)}
	}

	project := models.Project{
		Key:         params.Key,
		Name:        params.Name,
		Description: params.Description,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Status:      params.Status,
		OwnerID:     params.OwnerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkProjectKeyUnique(tx, project.Key, 0); err != nil {
			return err
		}
		if project.OwnerID != nil {
			if err := requireUser(tx, *project.OwnerID); err != nil {
				return err
			}
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &project, nil
}

func checkProjectKeyUnique(tx *gorm.DB, key string, excludeID uint) error {
	var existing models.Project

	err := tx.Where("key = ? AND id <> ?", key, excludeID).First(&existing).Error
	if err == nil {
		return &models.UniquenessError{Field: "project_key", Value: key}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func requireUser(tx *gorm.DB, id uint) error {
	var user models.User

	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	return nil
}

func (s *Store) GetProject(id uint) (*models.Project, error) {
	var project models.Project

	if err := s.db.First(&project, id).Error; err != nil {
		return nil, translate(err)
	}

	return &project, nil
}

func (s *Store) GetProjectByKey(key string) (*models.Project, error) {
	var project models.Project

	if err := s.db.Where("key = ?", key).First(&project).Error; err != nil {
		return nil, translate(err)
	}

	return &project, nil
}

func (s *Store) ListProjects(skip, limit int) ([]models.Project, error) {
	var projects []models.Project

	skip, limit = normalizeRange(skip, limit)

	if err := s.db.Order("id").Offset(skip).Limit(limit).Find(&projects).Error; err != nil {
		return nil, translate(err)
	}

	return projects, nil
}

type ProjectUpdate struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *models.ProjectStatus
	OwnerID     *uint
	ClearOwner  bool
}

func (s *Store) UpdateProject(id uint, patch ProjectUpdate) (*models.Project, error) {
	var project models.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := locked(tx).First(&project, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return &models.ValidationError{Field: "project_name", Reason: "must not be empty"}
			}
			updates["name"] = name
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
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
		if patch.ClearOwner {
			updates["owner_id"] = nil
		} else if patch.OwnerID != nil {
			if err := requireUser(tx, *patch.OwnerID); err != nil {
				return err
			}
			updates["owner_id"] = *patch.OwnerID
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&project).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &project, nil
}

// DeleteProject removes the project and its whole dependent subtree:
// every issue (with its comments, worklogs, and attachments), then every
// sprint, then the project itself, all in one transaction. The dependency
// graph is walked explicitly rather than left to database-side cascades,
// so the behavior is identical on every engine.
func (s *Store) DeleteProject(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := locked(tx).First(&project, id).Error; err != nil {
			return err
		}

		var issues []models.Issue

		if err := locked(tx).Where("project_id = ?", id).Find(&issues).Error; err != nil {
			return err
		}

		for i := range issues {
			if err := deleteIssueTree(tx, &issues[i]); err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Sprint{}).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})

	return translate(err)
}
