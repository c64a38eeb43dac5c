package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskline-dev/taskline/internal/models"
	"github.com/taskline-dev/taskline/internal/store"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <key> <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		owner, _ := cmd.Flags().GetUint("owner")
		description, _ := cmd.Flags().GetString("description")

		project, err := entities.CreateProject(store.CreateProjectParams{
			Key:         args[0],
			Name:        args[1],
			Description: description,
			Status:      models.ProjectStatus(status),
			OwnerID:     optionalID(owner),
		})
		if err != nil {
			return err
		}

		fmt.Printf("created project %d (%s)\n", project.ID, project.Key)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := entities.ListProjects(0, 0)
		if err != nil {
			return err
		}

		for _, p := range projects {
			fmt.Printf("%d\t%s\t%s\t%s\n", p.ID, p.Key, p.Name, p.Status)
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := entities.DeleteProject(id); err != nil {
			return err
		}

		fmt.Printf("deleted project %d with all of its sprints and issues\n", id)
		return nil
	},
}

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprints",
}

var sprintCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a sprint in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetUint("project")
		goal, _ := cmd.Flags().GetString("goal")
		status, _ := cmd.Flags().GetString("status")

		sprint, err := entities.CreateSprint(store.CreateSprintParams{
			ProjectID: projectID,
			Name:      args[0],
			Goal:      goal,
			Status:    models.SprintStatus(status),
		})
		if err != nil {
			return err
		}

		fmt.Printf("created sprint %d (%s) in project %d\n", sprint.ID, sprint.Name, sprint.ProjectID)
		return nil
	},
}

var sprintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sprints of a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetUint("project")

		sprints, err := entities.ListSprintsByProject(projectID, 0, 0)
		if err != nil {
			return err
		}

		for _, s := range sprints {
			fmt.Printf("%d\t%s\t%s\n", s.ID, s.Name, s.Status)
		}
		return nil
	},
}

var sprintDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a sprint (its issues are unscheduled, not deleted)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := entities.DeleteSprint(id); err != nil {
			return err
		}

		fmt.Printf("deleted sprint %d\n", id)
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().String("status", "planning", "planning, active, completed, or archived")
	projectCreateCmd.Flags().Uint("owner", 0, "owning user id")
	projectCreateCmd.Flags().String("description", "", "project description")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	sprintCreateCmd.Flags().Uint("project", 0, "project id")
	sprintCreateCmd.Flags().String("goal", "", "sprint goal")
	sprintCreateCmd.Flags().String("status", "future", "future, active, or completed")
	sprintCreateCmd.MarkFlagRequired("project")

	sprintListCmd.Flags().Uint("project", 0, "project id")
	sprintListCmd.MarkFlagRequired("project")

	sprintCmd.AddCommand(sprintCreateCmd)
	sprintCmd.AddCommand(sprintListCmd)
	sprintCmd.AddCommand(sprintDeleteCmd)
}
