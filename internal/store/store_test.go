package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/taskline-dev/taskline/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
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

	return New(gdb)
}

func mustUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()

	user, err := s.CreateUser(CreateUserParams{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustProject(t *testing.T, s *Store, key string) *models.Project {
	t.Helper()

	project, err := s.CreateProject(CreateProjectParams{
		Key:  key,
		Name: key + " project",
	})
	if err != nil {
		t.Fatalf("create project %s: %v", key, err)
	}
	return project
}

func mustSprint(t *testing.T, s *Store, projectID uint, name string) *models.Sprint {
	t.Helper()

	sprint, err := s.CreateSprint(CreateSprintParams{
		ProjectID: projectID,
		Name:      name,
	})
	if err != nil {
		t.Fatalf("create sprint %s: %v", name, err)
	}
	return sprint
}

func mustIssue(t *testing.T, s *Store, projectID uint, description string) *models.Issue {
	t.Helper()

	issue, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   projectID,
		Description: description,
	})
	if err != nil {
		t.Fatalf("create issue %q: %v", description, err)
	}
	return issue
}

func mustWorklog(t *testing.T, s *Store, issueID uint, loggerID *uint, hours float64) *models.Worklog {
	t.Helper()

	worklog, err := s.CreateWorklog(CreateWorklogParams{
		IssueID:  issueID,
		LoggerID: loggerID,
		Hours:    hours,
		WorkDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("create worklog on issue %d: %v", issueID, err)
	}
	return worklog
}
