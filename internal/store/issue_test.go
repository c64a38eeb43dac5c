package store

import (
	"errors"
	"testing"

	"github.com/taskline-dev/taskline/internal/models"
)

func TestCreateIssueDefaults(t *testing.T) {
	s := newTestStore(t)

	project := mustProject(t, s, "DEMO")
	issue := mustIssue(t, s, project.ID, "plain issue")

	if issue.Type != models.IssueTypeTask {
		t.Errorf("type = %q, want Task", issue.Type)
	}
	if issue.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want Medium", issue.Priority)
	}
	if issue.Status != models.StatusToDo {
		t.Errorf("status = %q, want To Do", issue.Status)
	}
}

func TestCreateIssueRejectsBadEnums(t *testing.T) {
	s := newTestStore(t)

	project := mustProject(t, s, "DEMO")

	cases := []CreateIssueParams{
		{ProjectID: project.ID, Description: "x", Type: "Incident"},
		{ProjectID: project.ID, Description: "x", Priority: "Urgent"},
		{ProjectID: project.ID, Description: "x", Status: "Started"},
		{ProjectID: project.ID, Description: ""},
	}

	for _, params := range cases {
		_, err := s.CreateIssue(params)

		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("params %+v: got %v, want ValidationError", params, err)
		}
	}
}

func TestCreateIssueCrossProjectSprint(t *testing.T) {
	s := newTestStore(t)

	demo := mustProject(t, s, "DEMO")
	other := mustProject(t, s, "OTHER")
	foreignSprint := mustSprint(t, s, other.ID, "Elsewhere 1")

	_, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   demo.ID,
		Description: "mismatched sprint",
		SprintID:    &foreignSprint.ID,
	})

	var cross *models.CrossProjectError
	if !errors.As(err, &cross) {
		t.Fatalf("cross-project sprint: got %v, want CrossProjectError", err)
	}
	if cross.Relation != "sprint" {
		t.Errorf("relation = %q, want sprint", cross.Relation)
	}
}

func TestCreateIssueCrossProjectParent(t *testing.T) {
	s := newTestStore(t)

	demo := mustProject(t, s, "DEMO")
	other := mustProject(t, s, "OTHER")
	foreignIssue := mustIssue(t, s, other.ID, "foreign parent")

	_, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   demo.ID,
		Description: "mismatched parent",
		ParentID:    &foreignIssue.ID,
	})

	var cross *models.CrossProjectError
	if !errors.As(err, &cross) {
		t.Fatalf("cross-project parent: got %v, want CrossProjectError", err)
	}
}

func TestCreateIssueUnknownSprint(t *testing.T) {
	s := newTestStore(t)

	demo := mustProject(t, s, "DEMO")
	missing := uint(999)

	_, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   demo.ID,
		Description: "ghost sprint",
		SprintID:    &missing,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("unknown sprint: got %v, want ErrNotFound", err)
	}
}

func TestUpdateIssueSprintScoping(t *testing.T) {
	s := newTestStore(t)

	demo := mustProject(t, s, "DEMO")
	other := mustProject(t, s, "OTHER")
	homeSprint := mustSprint(t, s, demo.ID, "Sprint 1")
	foreignSprint := mustSprint(t, s, other.ID, "Elsewhere 1")
	issue := mustIssue(t, s, demo.ID, "scoped issue")

	_, err := s.UpdateIssue(issue.ID, IssueUpdate{SprintID: &foreignSprint.ID})

	var cross *models.CrossProjectError
	if !errors.As(err, &cross) {
		t.Fatalf("foreign sprint accepted: got %v, want CrossProjectError", err)
	}

	updated, err := s.UpdateIssue(issue.ID, IssueUpdate{SprintID: &homeSprint.ID})
	if err != nil {
		t.Fatalf("assign home sprint: %v", err)
	}

	got, err := s.GetIssue(updated.ID)
	if err != nil {
		t.Fatalf("reload issue: %v", err)
	}
	if got.SprintID == nil || *got.SprintID != homeSprint.ID {
		t.Errorf("sprint not assigned: %+v", got.SprintID)
	}
}

// Moving an issue to another project must revalidate its sprint and
// parent links against the new project, even though neither link is part
// of the patch.
func TestUpdateIssueProjectChangeRevalidates(t *testing.T) {
	s := newTestStore(t)

	demo := mustProject(t, s, "DEMO")
	other := mustProject(t, s, "OTHER")
	sprint := mustSprint(t, s, demo.ID, "Sprint 1")

	issue, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   demo.ID,
		Description: "scheduled issue",
		SprintID:    &sprint.ID,
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	_, err = s.UpdateIssue(issue.ID, IssueUpdate{ProjectID: &other.ID})

	var cross *models.CrossProjectError
	if !errors.As(err, &cross) {
		t.Fatalf("project move with stale sprint: got %v, want CrossProjectError", err)
	}

	// Clearing the sprint in the same patch makes the move legal.
	moved, err := s.UpdateIssue(issue.ID, IssueUpdate{ProjectID: &other.ID, ClearSprint: true})
	if err != nil {
		t.Fatalf("project move with cleared sprint: %v", err)
	}

	got, err := s.GetIssue(moved.ID)
	if err != nil {
		t.Fatalf("reload issue: %v", err)
	}
	if got.ProjectID != other.ID || got.SprintID != nil {
		t.Errorf("move not applied: project=%d sprint=%v", got.ProjectID, got.SprintID)
	}
}

func TestDeleteIssueCascadesAndDetachesChildren(t *testing.T) {
	s := newTestStore(t)

	project := mustProject(t, s, "DEMO")
	parent := mustIssue(t, s, project.ID, "epic")

	child, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   project.ID,
		Description: "sub-task",
		ParentID:    &parent.ID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	comment, err := s.CreateComment(CreateCommentParams{IssueID: parent.ID, Text: "on the epic"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	worklog := mustWorklog(t, s, parent.ID, nil, 3)

	if err := s.DeleteIssue(parent.ID); err != nil {
		t.Fatalf("delete issue: %v", err)
	}

	if _, err := s.GetIssue(parent.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("deleted issue still readable: %v", err)
	}
	if _, err := s.GetComment(comment.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("comment survives issue delete: %v", err)
	}
	if _, err := s.GetWorklog(worklog.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("worklog survives issue delete: %v", err)
	}

	gotChild, err := s.GetIssue(child.ID)
	if err != nil {
		t.Fatalf("child deleted along with parent: %v", err)
	}
	if gotChild.ParentID != nil {
		t.Errorf("child parent reference not cleared")
	}
}

func TestDeleteSprintDetachesIssues(t *testing.T) {
	s := newTestStore(t)

	project := mustProject(t, s, "DEMO")
	sprint := mustSprint(t, s, project.ID, "Sprint 1")

	issue, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   project.ID,
		Description: "scheduled",
		SprintID:    &sprint.ID,
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	if err := s.DeleteSprint(sprint.ID); err != nil {
		t.Fatalf("delete sprint: %v", err)
	}

	got, err := s.GetIssue(issue.ID)
	if err != nil {
		t.Fatalf("issue deleted along with sprint: %v", err)
	}
	if got.SprintID != nil {
		t.Errorf("sprint reference not cleared")
	}
}

func TestListIssuesByProjectAndSprint(t *testing.T) {
	s := newTestStore(t)

	project := mustProject(t, s, "DEMO")
	sprint := mustSprint(t, s, project.ID, "Sprint 1")

	mustIssue(t, s, project.ID, "first")
	scheduled, err := s.CreateIssue(CreateIssueParams{
		ProjectID:   project.ID,
		Description: "second",
		SprintID:    &sprint.ID,
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	byProject, err := s.ListIssuesByProject(project.ID, 0, 0)
	if err != nil {
		t.Fatalf("list by project: %v", err)
	}
	if len(byProject) != 2 {
		t.Errorf("project issues = %d, want 2", len(byProject))
	}

	bySprint, err := s.ListIssuesBySprint(sprint.ID, 0, 0)
	if err != nil {
		t.Fatalf("list by sprint: %v", err)
	}
	if len(bySprint) != 1 || bySprint[0].ID != scheduled.ID {
		t.Errorf("sprint issues = %+v, want just issue %d", bySprint, scheduled.ID)
	}
}

func TestGetIssueDetails(t *testing.T) {
	s := newTestStore(t)

	project := mustProject(t, s, "DEMO")
	issue := mustIssue(t, s, project.ID, "detailed")

	if _, err := s.CreateComment(CreateCommentParams{IssueID: issue.ID, Text: "hi"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	mustWorklog(t, s, issue.ID, nil, 2.5)
	mustWorklog(t, s, issue.ID, nil, 1.25)

	details, err := s.GetIssueDetails(issue.ID)
	if err != nil {
		t.Fatalf("issue details: %v", err)
	}

	if len(details.Comments) != 1 || len(details.Worklogs) != 2 {
		t.Errorf("details = %d comments, %d worklogs", len(details.Comments), len(details.Worklogs))
	}
	if details.TotalHours != 3.75 {
		t.Errorf("total hours = %v, want 3.75", details.TotalHours)
	}
}
