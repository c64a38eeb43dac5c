package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskline-dev/taskline/internal/aggregate"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Derived metrics, computed from current state on every run",
}

var reportHoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Total hours for an issue or a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		issueID, _ := cmd.Flags().GetUint("issue")
		projectID, _ := cmd.Flags().GetUint("project")
		byUser, _ := cmd.Flags().GetBool("by-user")

		switch {
		case issueID != 0:
			total, err := engine.TotalHoursForIssue(issueID)
			if err != nil {
				return err
			}
			fmt.Printf("issue %d: %.2f hours\n", issueID, total)

		case projectID != 0 && byUser:
			rows, err := engine.HoursByUserForProject(projectID)
			if err != nil {
				return err
			}
			for _, row := range rows {
				fmt.Printf("%s\t%.2f hours\n", row.Username, row.TotalHours)
			}

		case projectID != 0:
			total, err := engine.TotalHoursForProject(projectID)
			if err != nil {
				return err
			}
			fmt.Printf("project %d: %.2f hours\n", projectID, total)

		default:
			return fmt.Errorf("one of --issue or --project is required")
		}
		return nil
	},
}

var reportCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Issue counts for a project or a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetUint("project")
		userID, _ := cmd.Flags().GetUint("user")
		role, _ := cmd.Flags().GetString("role")

		switch {
		case projectID != 0:
			count, err := engine.IssueCountForProject(projectID)
			if err != nil {
				return err
			}
			fmt.Printf("project %d: %d issues\n", projectID, count)

		case userID != 0:
			count, err := engine.IssueCountForUser(userID, aggregate.IssueRole(role))
			if err != nil {
				return err
			}
			fmt.Printf("user %d as %s: %d issues\n", userID, role, count)

		default:
			return fmt.Errorf("one of --project or --user is required")
		}
		return nil
	},
}

func init() {
	reportHoursCmd.Flags().Uint("issue", 0, "issue id")
	reportHoursCmd.Flags().Uint("project", 0, "project id")
	reportHoursCmd.Flags().Bool("by-user", false, "break project hours down by user")

	reportCountsCmd.Flags().Uint("project", 0, "project id")
	reportCountsCmd.Flags().Uint("user", 0, "user id")
	reportCountsCmd.Flags().String("role", "assignee", "reporter or assignee")

	reportCmd.AddCommand(reportHoursCmd)
	reportCmd.AddCommand(reportCountsCmd)
}
