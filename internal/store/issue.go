package store

import (
	"strings"
	"time"

	"github.com/taskline-dev/taskline/internal/consistency"
	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
)

type CreateIssueParams struct {
	ProjectID   uint
	Description string
	Type        models.IssueType
	Priority    models.IssuePriority
	Status      models.IssueStatus
	ReporterID  *uint
	AssigneeID  *uint
	SprintID    *uint
	ParentID    *uint
	StoryPoints *int
	DueDate     *time.Time
}

func (s *Store) CreateIssue(params CreateIssueParams) (*models.Issue, error) {
	params.Description = strings.TrimSpace(params.Description)

	if params.Description == "" {
		return nil, &models.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if params.Type == "" {
		params.Type = models.IssueTypeTask
	}
	if !params.Type.Valid() {
		return nil, &models.ValidationError{Field: "issue_type", Reason: "unrecognized type " + string(params.Type)}
	}
	if params.Priority == "" {
		params.Priority = models.PriorityMedium
	}
	if !params.Priority.Valid() {
		return nil, &models.ValidationError{Field: "priority", Reason: "unrecognized priority " + string(params.Priority)}
	}
	if params.Status == "" {
		params.Status = models.StatusToDo
	}
	if !params.Status.Valid() {
		return nil, &models.ValidationError{Field: "status", Reason: "unrecognized status " + string(params.Status)}
	}
	if params.StoryPoints != nil && *params.StoryPoints < 0 {
		return nil, &models.ValidationError{Field: "story_points", Reason: "must not be negative"}
	}

	issue := models.Issue{
		ProjectID:   params.ProjectID,
		SprintID:    params.SprintID,
		Description: params.Description,
		Type:        params.Type,
		Priority:    params.Priority,
		Status:      params.Status,
		ReporterID:  params.ReporterID,
		AssigneeID:  params.AssigneeID,
		ParentID:    params.ParentID,
		StoryPoints: params.StoryPoints,
		DueDate:     params.DueDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireProject(tx, issue.ProjectID); err != nil {
			return err
		}
		if issue.ReporterID != nil {
			if err := requireUser(tx, *issue.ReporterID); err != nil {
				return err
			}
		}
		if issue.AssigneeID != nil {
			if err := requireUser(tx, *issue.AssigneeID); err != nil {
				return err
			}
		}
		if err := consistency.ValidateIssueLinks(tx, issue.ProjectID, issue.SprintID, issue.ParentID); err != nil {
			return err
		}
		return tx.Create(&issue).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &issue, nil
}

func (s *Store) GetIssue(id uint) (*models.Issue, error) {
	var issue models.Issue

	if err := s.db.First(&issue, id).Error; err != nil {
		return nil, translate(err)
	}

	return &issue, nil
}

// IssueDetails is the detail view of a single issue: the issue plus all
// of its dependents and the total hours logged against it.
type IssueDetails struct {
	Issue       models.Issue
	Comments    []models.Comment
	Worklogs    []models.Worklog
	Attachments []models.Attachment
	TotalHours  float64
}

func (s *Store) GetIssueDetails(id uint) (*IssueDetails, error) {
	var details IssueDetails

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&details.Issue, id).Error; err != nil {
			return err
		}
		if err := tx.Where("issue_id = ?", id).Order("created_at").Find(&details.Comments).Error; err != nil {
			return err
		}
		err := tx.Where("issue_id = ?", id).
			Order("work_date DESC, created_at DESC").
			Find(&details.Worklogs).Error
		if err != nil {
			return err
		}
		if err := tx.Where("issue_id = ?", id).Order("id").Find(&details.Attachments).Error; err != nil {
			return err
		}

		for _, w := range details.Worklogs {
			details.TotalHours += w.Hours
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	return &details, nil
}

func (s *Store) ListIssuesByProject(projectID uint, skip, limit int) ([]models.Issue, error) {
	var issues []models.Issue

	skip, limit = normalizeRange(skip, limit)

	err := s.db.Where("project_id = ?", projectID).
		Order("created_at DESC").Offset(skip).Limit(limit).
		Find(&issues).Error
	if err != nil {
		return nil, translate(err)
	}

	return issues, nil
}

func (s *Store) ListIssuesBySprint(sprintID uint, skip, limit int) ([]models.Issue, error) {
	var issues []models.Issue

	skip, limit = normalizeRange(skip, limit)

	err := s.db.Where("sprint_id = ?", sprintID).
		Order("priority, created_at DESC").Offset(skip).Limit(limit).
		Find(&issues).Error
	if err != nil {
		return nil, translate(err)
	}

	return issues, nil
}

// IssueUpdate is a partial update. Pointer fields are applied when
// non-nil; Clear* flags set the corresponding nullable reference to none
// and win over the pointer.
type IssueUpdate struct {
	Description *string
	Type        *models.IssueType
	Priority    *models.IssuePriority
	Status      *models.IssueStatus
	StoryPoints *int
	DueDate     *time.Time
	ProjectID   *uint

	SprintID    *uint
	ClearSprint bool

	AssigneeID    *uint
	ClearAssignee bool

	ParentID    *uint
	ClearParent bool
}

// UpdateIssue revalidates only the relationship fields the patch touches.
// If the project itself changes, the sprint and parent links are
// revalidated against the new project even when they are not part of the
// patch.
func (s *Store) UpdateIssue(id uint, patch IssueUpdate) (*models.Issue, error) {
	var issue models.Issue

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := locked(tx).First(&issue, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}

		if patch.Description != nil {
			description := strings.TrimSpace(*patch.Description)
			if description == "" {
				return &models.ValidationError{Field: "description", Reason: "must not be empty"}
			}
			updates["description"] = description
		}
		if patch.Type != nil {
			if !patch.Type.Valid() {
				return &models.ValidationError{Field: "issue_type", Reason: "unrecognized type " + string(*patch.Type)}
			}
			updates["issue_type"] = *patch.Type
		}
		if patch.Priority != nil {
			if !patch.Priority.Valid() {
				return &models.ValidationError{Field: "priority", Reason: "unrecognized priority " + string(*patch.Priority)}
			}
			updates["priority"] = *patch.Priority
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return &models.ValidationError{Field: "status", Reason: "unrecognized status " + string(*patch.Status)}
			}
			updates["status"] = *patch.Status
		}
		if patch.StoryPoints != nil {
			if *patch.StoryPoints < 0 {
				return &models.ValidationError{Field: "story_points", Reason: "must not be negative"}
			}
			updates["story_points"] = *patch.StoryPoints
		}
		if patch.DueDate != nil {
			updates["due_date"] = *patch.DueDate
		}

		// Work out the target state of the scoped relationships, then
		// let the enforcer judge the changed ones. First violation wins.
		projectID := issue.ProjectID
		projectChanged := false

		if patch.ProjectID != nil && *patch.ProjectID != issue.ProjectID {
			if err := requireProject(tx, *patch.ProjectID); err != nil {
				return err
			}
			projectID = *patch.ProjectID
			projectChanged = true
			updates["project_id"] = projectID
		}

		sprintID := issue.SprintID
		sprintChanged := false

		if patch.ClearSprint {
			sprintID = nil
			sprintChanged = true
			updates["sprint_id"] = nil
		} else if patch.SprintID != nil {
			sprintID = patch.SprintID
			sprintChanged = true
			updates["sprint_id"] = *patch.SprintID
		}

		parentID := issue.ParentID
		parentChanged := false

		if patch.ClearParent {
			parentID = nil
			parentChanged = true
			updates["parent_id"] = nil
		} else if patch.ParentID != nil {
			parentID = patch.ParentID
			parentChanged = true
			updates["parent_id"] = *patch.ParentID
		}

		if sprintChanged || projectChanged {
			if err := consistency.ValidateSprint(tx, projectID, sprintID); err != nil {
				return err
			}
		}
		if parentChanged || projectChanged {
			if err := consistency.ValidateParent(tx, projectID, parentID); err != nil {
				return err
			}
		}

		if patch.ClearAssignee {
			updates["assignee_id"] = nil
		} else if patch.AssigneeID != nil {
			if err := requireUser(tx, *patch.AssigneeID); err != nil {
				return err
			}
			updates["assignee_id"] = *patch.AssigneeID
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&issue).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	return &issue, nil
}

// DeleteIssue removes the issue together with its comments, worklogs,
// and attachments, and detaches any sub-task that pointed at it.
func (s *Store) DeleteIssue(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var issue models.Issue

		if err := locked(tx).First(&issue, id).Error; err != nil {
			return err
		}

		return deleteIssueTree(tx, &issue)
	})

	return translate(err)
}

// deleteIssueTree walks the issue's dependent subtree depth-first inside
// the caller's transaction: dependents first, then the issue row. Child
// issues are not deleted; their parent reference is set to none.
func deleteIssueTree(tx *gorm.DB, issue *models.Issue) error {
	if err := tx.Where("issue_id = ?", issue.ID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("issue_id = ?", issue.ID).Delete(&models.Worklog{}).Error; err != nil {
		return err
	}
	if err := tx.Where("issue_id = ?", issue.ID).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}

	err := tx.Model(&models.Issue{}).
		Where("parent_id = ?", issue.ID).
		UpdateColumn("parent_id", nil).Error
	if err != nil {
		return err
	}

	return tx.Delete(issue).Error
}
