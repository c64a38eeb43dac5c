package workflow

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/taskline-dev/taskline/internal/models"
	"github.com/taskline-dev/taskline/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestController(t *testing.T) (*Controller, *store.Store) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "taskline.db")

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Sprint{},
		&models.Issue{},
		&models.Comment{},
		&models.Worklog{},
		&models.Attachment{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	s := store.New(gdb)
	return New(s), s
}

// A sprint from another project is rejected; the project's own sprint
// is accepted.
func TestAssignSprintScoping(t *testing.T) {
	c, s := newTestController(t)

	demo, err := s.CreateProject(store.CreateProjectParams{Key: "DEMO", Name: "Demo"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	other, err := s.CreateProject(store.CreateProjectParams{Key: "OTHER", Name: "Other"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	s1, err := s.CreateSprint(store.CreateSprintParams{ProjectID: demo.ID, Name: "Sprint 1"})
	if err != nil {
		t.Fatalf("create sprint: %v", err)
	}
	foreign, err := s.CreateSprint(store.CreateSprintParams{ProjectID: other.ID, Name: "Elsewhere 1"})
	if err != nil {
		t.Fatalf("create sprint: %v", err)
	}

	i1, err := s.CreateIssue(store.CreateIssueParams{ProjectID: demo.ID, Description: "I1"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	_, err = c.AssignSprint(i1.ID, &foreign.ID)

	var cross *models.CrossProjectError
	if !errors.As(err, &cross) {
		t.Fatalf("foreign sprint: got %v, want CrossProjectError", err)
	}

	assigned, err := c.AssignSprint(i1.ID, &s1.ID)
	if err != nil {
		t.Fatalf("assign own sprint: %v", err)
	}
	if assigned.SprintID == nil || *assigned.SprintID != s1.ID {
		t.Errorf("sprint not assigned: %v", assigned.SprintID)
	}

	unassigned, err := c.AssignSprint(i1.ID, nil)
	if err != nil {
		t.Fatalf("unassign sprint: %v", err)
	}
	if unassigned.SprintID != nil {
		t.Errorf("sprint not cleared: %v", *unassigned.SprintID)
	}
}

func TestSetStatusAllowsAnyTransition(t *testing.T) {
	c, s := newTestController(t)

	project, err := s.CreateProject(store.CreateProjectParams{Key: "DEMO", Name: "Demo"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	issue, err := s.CreateIssue(store.CreateIssueParams{ProjectID: project.ID, Description: "moving"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	// No transition table: any order of statuses is legal.
	sequence := []models.IssueStatus{
		models.StatusDone,
		models.StatusToDo,
		models.StatusBlocked,
		models.StatusInReview,
		models.StatusInProgress,
	}

	for _, status := range sequence {
		updated, err := c.SetStatus(issue.ID, status)
		if err != nil {
			t.Fatalf("set status %q: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %q, want %q", updated.Status, status)
		}
	}

	if _, err := c.SetStatus(issue.ID, "Cancelled"); err == nil {
		t.Errorf("unrecognized status accepted")
	}
}

func TestSetStatusAdvancesUpdatedAt(t *testing.T) {
	c, s := newTestController(t)

	project, err := s.CreateProject(store.CreateProjectParams{Key: "DEMO", Name: "Demo"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	issue, err := s.CreateIssue(store.CreateIssueParams{ProjectID: project.ID, Description: "moving"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	before := issue.UpdatedAt
	time.Sleep(20 * time.Millisecond)

	if _, err := c.SetStatus(issue.ID, models.StatusInProgress); err != nil {
		t.Fatalf("set status: %v", err)
	}

	after, err := s.GetIssue(issue.ID)
	if err != nil {
		t.Fatalf("reload issue: %v", err)
	}
	if !after.UpdatedAt.After(before) {
		t.Errorf("updated_date did not advance: %v -> %v", before, after.UpdatedAt)
	}
}

func TestAssignUser(t *testing.T) {
	c, s := newTestController(t)

	project, err := s.CreateProject(store.CreateProjectParams{Key: "DEMO", Name: "Demo"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	issue, err := s.CreateIssue(store.CreateIssueParams{ProjectID: project.ID, Description: "assignable"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	alice, err := s.CreateUser(store.CreateUserParams{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	assigned, err := c.AssignUser(issue.ID, &alice.ID)
	if err != nil {
		t.Fatalf("assign user: %v", err)
	}
	if assigned.AssigneeID == nil || *assigned.AssigneeID != alice.ID {
		t.Errorf("assignee not set")
	}

	missing := uint(999)
	if _, err := c.AssignUser(issue.ID, &missing); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown assignee: got %v, want ErrNotFound", err)
	}

	cleared, err := c.AssignUser(issue.ID, nil)
	if err != nil {
		t.Fatalf("unassign user: %v", err)
	}
	if cleared.AssigneeID != nil {
		t.Errorf("assignee not cleared")
	}
}
