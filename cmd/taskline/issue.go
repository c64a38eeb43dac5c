package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskline-dev/taskline/internal/models"
	"github.com/taskline-dev/taskline/internal/store"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Manage issues",
}

var issueCreateCmd = &cobra.Command{
	Use:   "create <description>",
	Short: "Create an issue in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetUint("project")
		issueType, _ := cmd.Flags().GetString("type")
		priority, _ := cmd.Flags().GetString("priority")
		reporter, _ := cmd.Flags().GetUint("reporter")
		assignee, _ := cmd.Flags().GetUint("assignee")
		sprint, _ := cmd.Flags().GetUint("sprint")
		parent, _ := cmd.Flags().GetUint("parent")

		issue, err := entities.CreateIssue(store.CreateIssueParams{
			ProjectID:   projectID,
			Description: args[0],
			Type:        models.IssueType(issueType),
			Priority:    models.IssuePriority(priority),
			ReporterID:  optionalID(reporter),
			AssigneeID:  optionalID(assignee),
			SprintID:    optionalID(sprint),
			ParentID:    optionalID(parent),
		})
		if err != nil {
			return err
		}

		fmt.Printf("created issue %d in project %d\n", issue.ID, issue.ProjectID)
		return nil
	},
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues by project or sprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetUint("project")
		sprintID, _ := cmd.Flags().GetUint("sprint")

		var (
			list []models.Issue
			err  error
		)

		switch {
		case sprintID != 0:
			list, err = entities.ListIssuesBySprint(sprintID, 0, 0)
		case projectID != 0:
			list, err = entities.ListIssuesByProject(projectID, 0, 0)
		default:
			return fmt.Errorf("one of --project or --sprint is required")
		}
		if err != nil {
			return err
		}

		for _, i := range list {
			fmt.Printf("%d\t%s\t%s\t%s\t%s\n", i.ID, i.Type, i.Priority, i.Status, i.Description)
		}
		return nil
	},
}

var issueShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an issue with its comments, worklogs, and attachments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		details, err := entities.GetIssueDetails(id)
		if err != nil {
			return err
		}

		i := details.Issue
		fmt.Printf("issue %d [%s/%s/%s] project=%d\n", i.ID, i.Type, i.Priority, i.Status, i.ProjectID)
		fmt.Printf("  %s\n", i.Description)
		fmt.Printf("  updated %s, %.2f hours logged\n", i.UpdatedAt.Format("2006-01-02 15:04"), details.TotalHours)

		for _, c := range details.Comments {
			fmt.Printf("  comment %d: %s\n", c.ID, c.Text)
		}
		for _, w := range details.Worklogs {
			fmt.Printf("  worklog %d: %.2fh on %s\n", w.ID, w.Hours, w.WorkDate.Format("2006-01-02"))
		}
		for _, a := range details.Attachments {
			fmt.Printf("  attachment %d: %s (%d bytes)\n", a.ID, a.FileName, a.FileSize)
		}
		return nil
	},
}

var issueStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Set an issue's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		issue, err := issues.SetStatus(id, models.IssueStatus(args[1]))
		if err != nil {
			return err
		}

		fmt.Printf("issue %d is now %q\n", issue.ID, issue.Status)
		return nil
	},
}

var issueAssignCmd = &cobra.Command{
	Use:   "assign <id>",
	Short: "Assign an issue to a user (--user 0 unassigns)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		userID, _ := cmd.Flags().GetUint("user")

		issue, err := issues.AssignUser(id, optionalID(userID))
		if err != nil {
			return err
		}

		if issue.AssigneeID == nil {
			fmt.Printf("issue %d unassigned\n", issue.ID)
		} else {
			fmt.Printf("issue %d assigned to user %d\n", issue.ID, *issue.AssigneeID)
		}
		return nil
	},
}

var issueSprintCmd = &cobra.Command{
	Use:   "sprint <id>",
	Short: "Schedule an issue into a sprint (--sprint 0 unschedules)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sprintID, _ := cmd.Flags().GetUint("sprint")

		issue, err := issues.AssignSprint(id, optionalID(sprintID))
		if err != nil {
			return err
		}

		if issue.SprintID == nil {
			fmt.Printf("issue %d removed from its sprint\n", issue.ID)
		} else {
			fmt.Printf("issue %d scheduled into sprint %d\n", issue.ID, *issue.SprintID)
		}
		return nil
	},
}

var issueDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an issue with its comments, worklogs, and attachments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := entities.DeleteIssue(id); err != nil {
			return err
		}

		fmt.Printf("deleted issue %d\n", id)
		return nil
	},
}

func init() {
	issueCreateCmd.Flags().Uint("project", 0, "project id")
	issueCreateCmd.Flags().String("type", "Task", "Task, Bug, Story, or Epic")
	issueCreateCmd.Flags().String("priority", "Medium", "Highest, High, Medium, Low, or Lowest")
	issueCreateCmd.Flags().Uint("reporter", 0, "reporting user id")
	issueCreateCmd.Flags().Uint("assignee", 0, "assigned user id")
	issueCreateCmd.Flags().Uint("sprint", 0, "sprint id (must belong to the project)")
	issueCreateCmd.Flags().Uint("parent", 0, "parent issue id (must belong to the project)")
	issueCreateCmd.MarkFlagRequired("project")

	issueListCmd.Flags().Uint("project", 0, "project id")
	issueListCmd.Flags().Uint("sprint", 0, "sprint id")

	issueAssignCmd.Flags().Uint("user", 0, "assignee user id, 0 to unassign")
	issueSprintCmd.Flags().Uint("sprint", 0, "sprint id, 0 to unschedule")

	issueCmd.AddCommand(issueCreateCmd)
	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueShowCmd)
	issueCmd.AddCommand(issueStatusCmd)
	issueCmd.AddCommand(issueAssignCmd)
	issueCmd.AddCommand(issueSprintCmd)
	issueCmd.AddCommand(issueDeleteCmd)
}
