// Package aggregate computes derived metrics from current state on every
// call. Nothing is materialized or cached, so the numbers cannot drift
// from the rows they are derived from.
package aggregate

import (
	"database/sql"

	"github.com/taskline-dev/taskline/internal/models"
	"github.com/taskline-dev/taskline/internal/store"
	"gorm.io/gorm"
)

type Engine struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// TotalHoursForIssue sums the hours logged against one issue; 0 if none.
func (e *Engine) TotalHoursForIssue(issueID uint) (float64, error) {
	var total sql.NullFloat64

	err := e.db.Model(&models.Worklog{}).
		Where("issue_id = ?", issueID).
		Select("SUM(hours_logged)").
		Scan(&total).Error
	if err != nil {
		return 0, store.TranslateError(err)
	}

	return total.Float64, nil
}

// TotalHoursForProject sums hours across every issue of the project.
func (e *Engine) TotalHoursForProject(projectID uint) (float64, error) {
	var total sql.NullFloat64

	err := e.db.Model(&models.Worklog{}).
		Joins("JOIN issues ON issues.id = worklogs.issue_id").
		Where("issues.project_id = ?", projectID).
		Select("SUM(worklogs.hours_logged)").
		Scan(&total).Error
	if err != nil {
		return 0, store.TranslateError(err)
	}

	return total.Float64, nil
}

// UserHours is one row of the per-user hours breakdown for a project.
type UserHours struct {
	UserID     uint    `json:"user_id"`
	Username   string  `json:"username"`
	TotalHours float64 `json:"total_user_hours"`
}

// HoursByUserForProject groups the project's logged hours by the user who
// logged them, busiest first. Worklogs whose logger was deleted have no
// user to group under and are excluded.
func (e *Engine) HoursByUserForProject(projectID uint) ([]UserHours, error) {
	var rows []UserHours

	err := e.db.Model(&models.Worklog{}).
		Select("worklogs.logger_id AS user_id, users.username AS username, SUM(worklogs.hours_logged) AS total_hours").
		Joins("JOIN users ON users.id = worklogs.logger_id").
		Joins("JOIN issues ON issues.id = worklogs.issue_id").
		Where("issues.project_id = ?", projectID).
		Group("worklogs.logger_id, users.username").
		Order("total_hours DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, store.TranslateError(err)
	}

	return rows, nil
}

// IssueRole selects which side of an issue's user references a count is
// taken over.
type IssueRole string

const (
	RoleReporter IssueRole = "reporter"
	RoleAssignee IssueRole = "assignee"
)

// IssueCountForUser counts the issues a user reported or is assigned to.
func (e *Engine) IssueCountForUser(userID uint, role IssueRole) (int64, error) {
	var column string

	switch role {
	case RoleReporter:
		column = "reporter_id"
	case RoleAssignee:
		column = "assignee_id"
	default:
		return 0, &models.ValidationError{Field: "role", Reason: "unrecognized role " + string(role)}
	}

	var count int64

	err := e.db.Model(&models.Issue{}).
		Where(column+" = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, store.TranslateError(err)
	}

	return count, nil
}

// IssueCountForProject counts the issues belonging to a project.
func (e *Engine) IssueCountForProject(projectID uint) (int64, error) {
	var count int64

	err := e.db.Model(&models.Issue{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return 0, store.TranslateError(err)
	}

	return count, nil
}
