// Package workflow is the issue state-machine layer: status changes,
// sprint scheduling, and assignment. Any status may move to any other
// status; no transition table is enforced.
package workflow

import (
	"github.com/taskline-dev/taskline/internal/models"
	"github.com/taskline-dev/taskline/internal/store"
)

type Controller struct {
	store *store.Store
}

func New(s *store.Store) *Controller {
	return &Controller{store: s}
}

// SetStatus moves the issue to the given status and advances its
// updated_date.
func (c *Controller) SetStatus(issueID uint, status models.IssueStatus) (*models.Issue, error) {
	if !status.Valid() {
		return nil, &models.ValidationError{Field: "status", Reason: "unrecognized status " + string(status)}
	}

	return c.store.UpdateIssue(issueID, store.IssueUpdate{Status: &status})
}

// AssignSprint schedules the issue into a sprint, or out of any sprint
// when sprintID is nil. The sprint must belong to the issue's project;
// the store runs that check before the write commits.
func (c *Controller) AssignSprint(issueID uint, sprintID *uint) (*models.Issue, error) {
	if sprintID == nil {
		return c.store.UpdateIssue(issueID, store.IssueUpdate{ClearSprint: true})
	}
	return c.store.UpdateIssue(issueID, store.IssueUpdate{SprintID: sprintID})
}

// AssignUser sets or clears the assignee. Assignees are not scoped to the
// issue's project; anyone may be assigned.
func (c *Controller) AssignUser(issueID uint, userID *uint) (*models.Issue, error) {
	if userID == nil {
		return c.store.UpdateIssue(issueID, store.IssueUpdate{ClearAssignee: true})
	}
	return c.store.UpdateIssue(issueID, store.IssueUpdate{AssigneeID: userID})
}
